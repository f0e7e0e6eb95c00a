package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jadenpxrk/treedump/internal/app"
	"github.com/jadenpxrk/treedump/internal/config"
	"github.com/jadenpxrk/treedump/internal/labels"
	"github.com/jadenpxrk/treedump/internal/logging"
)

// configEnv names a config file explicitly; otherwise config.* is searched
// in $HOME/.config/treedump and the working directory.
const configEnv = "TREEDUMP_CONFIG"

// listFlags take one or more values: "-e dist build" is read as
// "-e dist -e build". The comma form "-e dist,build" works as well.
var listFlags = map[string]bool{
	"-e":                   true,
	"--exclude-dirs":       true,
	"-x":                   true,
	"--exclude-extensions": true,
}

// expandListArgs rewrites every run of plain values after a list flag into
// repeated flags, so the values are not taken as positional arguments.
// Parsing stops at "--".
func expandListArgs(args []string) []string {
	out := make([]string, 0, len(args))
	current := ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(out, args[i:]...)
		case listFlags[arg]:
			current = arg
			out = append(out, arg)
			if i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			current = listFlagOf(arg)
			out = append(out, arg)
		case current != "":
			out = append(out, current, arg)
		default:
			out = append(out, arg)
		}
	}
	return out
}

// listFlagOf returns the list flag an attached form such as "-edist" or
// "--exclude-dirs=dist" belongs to, or "".
func listFlagOf(arg string) string {
	if name, _, ok := strings.Cut(arg, "="); ok && listFlags[name] {
		return name
	}
	if !strings.HasPrefix(arg, "--") && len(arg) > 2 && listFlags[arg[:2]] {
		return arg[:2]
	}
	return ""
}

func newRootCmd(v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	var (
		outputFile        string
		excludeDirs       []string
		excludeExtensions []string
	)

	cmd := &cobra.Command{
		Use:   "treedump [-o file] [-e dir...] [-x ext...]",
		Short: "Dump a source tree and its text files into one line-numbered report.",
		Long: `treedump walks the configured source root, prints a map of its folders and
files, and lists every text file with line numbers. Binary files and excluded
directories or extensions are skipped. The configured extra files are listed
after the tree. Every line is echoed to stdout while the report is built, and
the full report is written to a file at the end.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			used, err := config.ReadInConfig(v, os.Getenv(configEnv))
			if err != nil {
				return err
			}
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}

			level, err := config.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger := logging.New(stderr, level)
			defer logger.Sync()
			if used != "" {
				logger.Debug("Using config file: " + used)
			}

			l, err := labels.Load(cfg.Locale)
			if err != nil {
				return err
			}

			_, err = app.New(cfg, l, logger, stdout).Run()
			return err
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	config.SetDefaults(v)

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Report file name (default: <prefix>_YYYYMMDD_HHMMSS.txt)")
	v.BindPFlag(config.KeyOutput, cmd.Flags().Lookup("output"))
	cmd.Flags().StringSliceVarP(&excludeDirs, "exclude-dirs", "e", nil, "Directory names to exclude, replacing the defaults (space- or comma-separated)")
	v.BindPFlag(config.KeyExcludeDirs, cmd.Flags().Lookup("exclude-dirs"))
	cmd.Flags().StringSliceVarP(&excludeExtensions, "exclude-extensions", "x", nil, "File extensions to exclude, replacing the defaults (space- or comma-separated)")
	v.BindPFlag(config.KeyExcludeExtensions, cmd.Flags().Lookup("exclude-extensions"))

	return cmd
}

func main() {
	cmd := newRootCmd(viper.New(), os.Stdout, os.Stderr)
	cmd.SetArgs(expandListArgs(os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
