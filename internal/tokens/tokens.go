// Package tokens estimates how many LLM tokens a report occupies.
package tokens

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

const (
	DefaultTiktokenModel = "gpt-4o"
	DefaultHFModel       = "gpt2"
)

// Counter counts tokens in text.
type Counter interface {
	Count(text string) (int, error)
	Name() string
}

type tiktokenCounter struct {
	model string
	enc   *tiktoken.Tiktoken
}

func (c *tiktokenCounter) Count(text string) (int, error) {
	return len(c.enc.EncodeOrdinary(text)), nil
}

func (c *tiktokenCounter) Name() string { return "tiktoken/" + c.model }

type hfCounter struct {
	model string
	tk    *hf.Tokenizer
}

func (c *hfCounter) Count(text string) (int, error) {
	en, err := c.tk.EncodeSingle(text)
	if err != nil {
		return 0, fmt.Errorf("huggingface tokenizer failed to encode text: %w", err)
	}
	return len(en.Tokens), nil
}

func (c *hfCounter) Name() string { return "huggingface/" + c.model }

// New returns a Counter for kind ("tiktoken" or "huggingface"). An empty
// model selects the backend's default. Both backends may download
// vocabulary files on first use.
func New(kind, model string) (Counter, error) {
	switch strings.ToLower(kind) {
	case "tiktoken":
		if model == "" {
			model = DefaultTiktokenModel
		}
		enc, err := tiktoken.EncodingForModel(model)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for model '%s': %w", model, err)
		}
		return &tiktokenCounter{model: model, enc: enc}, nil
	case "huggingface":
		if model == "" {
			model = DefaultHFModel
		}
		file, err := hf.CachedPath(model, "tokenizer.json")
		if err != nil {
			return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
		}
		tk, err := pretrained.FromFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load pretrained tokenizer for model %s (from %s): %w", model, file, err)
		}
		return &hfCounter{model: model, tk: tk}, nil
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use 'tiktoken' or 'huggingface'", kind)
	}
}
