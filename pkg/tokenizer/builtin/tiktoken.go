// Package builtin provides ready-made Tokenizer implementations, ported from
// the teacher's pkg/tokenizer/builtin (tiktoken.go, word_count.go,
// character_count.go) onto the generalized tokenizer.Tokenizer interface.
package builtin

import (
	"fmt"

	"github.com/kaidoc/docling/pkg/tokenizer"
	"github.com/pkoukk/tiktoken-go"
)

type tiktokenConfig struct {
	encodingName string
	maxTokens    int
}

// TiktokenOption configures NewTiktokenTokenizer.
type TiktokenOption func(*tiktokenConfig)

// WithEncoding sets the tiktoken encoding name (e.g. "cl100k_base",
// "o200k_base"). Empty names are ignored.
func WithEncoding(name string) TiktokenOption {
	return func(cfg *tiktokenConfig) {
		if name != "" {
			cfg.encodingName = name
		}
	}
}

// WithMaxTokens sets the context window MaxTokens() reports.
func WithMaxTokens(n int) TiktokenOption {
	return func(cfg *tiktokenConfig) {
		if n > 0 {
			cfg.maxTokens = n
		}
	}
}

// NewTiktokenTokenizer returns a Tokenizer backed by tiktoken-go, giving
// exact token counts for OpenAI-family models.
func NewTiktokenTokenizer(opts ...TiktokenOption) (tokenizer.Tokenizer, error) {
	cfg := &tiktokenConfig{encodingName: "o200k_base", maxTokens: 128000}
	for _, opt := range opts {
		opt(cfg)
	}
	enc, err := tiktoken.GetEncoding(cfg.encodingName)
	if err != nil {
		return nil, fmt.Errorf("tiktoken: failed to load encoding %q: %w", cfg.encodingName, err)
	}
	counter := func(s string) int {
		return len(enc.Encode(s, nil, nil))
	}
	return tokenizer.New(counter, cfg.maxTokens), nil
}
