package builtin

import "github.com/kaidoc/docling/pkg/tokenizer"

type charCountConfig struct {
	charsPerToken float64
	maxTokens     int
}

// CharacterCountOption configures NewCharCountTokenizer.
type CharacterCountOption func(*charCountConfig)

// WithCharsPerToken sets the average characters-per-token ratio. Default 4.0.
func WithCharsPerToken(cpt float64) CharacterCountOption {
	return func(cfg *charCountConfig) {
		if cpt > 0 {
			cfg.charsPerToken = cpt
		}
	}
}

// WithCharCountMaxTokens sets the context window MaxTokens() reports.
func WithCharCountMaxTokens(n int) CharacterCountOption {
	return func(cfg *charCountConfig) {
		if n > 0 {
			cfg.maxTokens = n
		}
	}
}

// NewCharCountTokenizer estimates tokens by dividing the rune count by
// charsPerToken, the cheapest possible approximation when no real vocabulary
// is available.
func NewCharCountTokenizer(opts ...CharacterCountOption) tokenizer.Tokenizer {
	cfg := &charCountConfig{charsPerToken: 4.0}
	for _, opt := range opts {
		opt(cfg)
	}
	return tokenizer.New(func(s string) int {
		return int(float64(len([]rune(s))) / cfg.charsPerToken)
	}, cfg.maxTokens)
}
