// Package config resolves run settings from defaults, an optional config
// file, TREEDUMP_* environment variables and command-line flags, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/jadenpxrk/treedump/internal/labels"
	"github.com/jadenpxrk/treedump/internal/walker"
)

// Keys understood in config files and environment variables.
const (
	KeyOutput            = "output"
	KeyExcludeDirs       = "exclude_dirs"
	KeyExcludeExtensions = "exclude_extensions"
	KeySourceRoot        = "source_root"
	KeyExtraFiles        = "extra_files"
	KeyOutputPrefix      = "output_prefix"
	KeyLocale            = "locale"
	KeyRespectGitignore  = "respect_gitignore"
	KeyPDFOutput         = "pdf_output"
	KeyClipboard         = "clipboard"
	KeyCountTokens       = "count_tokens"
	KeyTokenizer         = "tokenizer"
	KeyTokenizerModel    = "tokenizer_model"
	KeyLogLevel          = "log_level"
)

const (
	EnvPrefix = "TREEDUMP"
	AppName   = "treedump"

	DefaultSourceRoot   = "src"
	DefaultOutputPrefix = "project_structure"
	DefaultTokenizer    = "tiktoken"
	DefaultLogLevel     = "info"
)

// DefaultExtraFiles are dumped individually after the tree.
func DefaultExtraFiles() []string {
	return []string{"package.json", filepath.Join("public", "index.html")}
}

// Config holds the resolved settings of one run.
type Config struct {
	Output            string
	ExcludeDirs       []string
	ExcludeExtensions []string
	SourceRoot        string
	ExtraFiles        []string
	OutputPrefix      string
	Locale            string
	RespectGitignore  bool
	PDFOutput         string
	Clipboard         bool
	CountTokens       bool
	Tokenizer         string
	TokenizerModel    string
	LogLevel          string
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyExcludeDirs, walker.DefaultExcludeDirs())
	v.SetDefault(KeyExcludeExtensions, walker.DefaultExcludeExtensions())
	v.SetDefault(KeySourceRoot, DefaultSourceRoot)
	v.SetDefault(KeyExtraFiles, DefaultExtraFiles())
	v.SetDefault(KeyOutputPrefix, DefaultOutputPrefix)
	v.SetDefault(KeyLocale, labels.DefaultLocale)
	v.SetDefault(KeyRespectGitignore, false)
	v.SetDefault(KeyPDFOutput, "")
	v.SetDefault(KeyClipboard, false)
	v.SetDefault(KeyCountTokens, false)
	v.SetDefault(KeyTokenizer, DefaultTokenizer)
	v.SetDefault(KeyTokenizerModel, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
}

// ReadInConfig wires the environment and looks for config.{toml,yaml,...}
// in cfgFile, $HOME/.config/treedump, then the working directory. A missing
// config file is not an error; the returned path is empty in that case.
func ReadInConfig(v *viper.Viper, cfgFile string) (string, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", AppName))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("error reading config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// FromViper snapshots v into a Config and validates it.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Output:            v.GetString(KeyOutput),
		ExcludeDirs:       getList(v, KeyExcludeDirs),
		ExcludeExtensions: getList(v, KeyExcludeExtensions),
		SourceRoot:        v.GetString(KeySourceRoot),
		ExtraFiles:        getList(v, KeyExtraFiles),
		OutputPrefix:      v.GetString(KeyOutputPrefix),
		Locale:            v.GetString(KeyLocale),
		RespectGitignore:  v.GetBool(KeyRespectGitignore),
		PDFOutput:         v.GetString(KeyPDFOutput),
		Clipboard:         v.GetBool(KeyClipboard),
		CountTokens:       v.GetBool(KeyCountTokens),
		Tokenizer:         strings.ToLower(v.GetString(KeyTokenizer)),
		TokenizerModel:    v.GetString(KeyTokenizerModel),
		LogLevel:          v.GetString(KeyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings a run cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SourceRoot) == "" {
		return errors.New("source_root must not be empty")
	}
	if c.Output == "" && strings.TrimSpace(c.OutputPrefix) == "" {
		return errors.New("output_prefix must not be empty when no output file is given")
	}
	switch c.Tokenizer {
	case "tiktoken", "huggingface":
	default:
		return fmt.Errorf("unsupported tokenizer %q: use 'tiktoken' or 'huggingface'", c.Tokenizer)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log_level value to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return lvl, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return lvl, nil
}

// getList reads a list setting. A single string, as environment variables
// deliver it, is split on commas; list values from config files, flags and
// defaults are taken item by item, so commas inside an item survive.
func getList(v *viper.Viper, key string) []string {
	if s, ok := v.Get(key).(string); ok {
		return splitList(s)
	}
	return cleanList(v.GetStringSlice(key))
}

func splitList(s string) []string {
	return cleanList(strings.Split(s, ","))
}

// cleanList trims every item and drops empty ones.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
