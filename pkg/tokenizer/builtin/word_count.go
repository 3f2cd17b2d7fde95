package builtin

import (
	"unicode"

	"github.com/kaidoc/docling/pkg/tokenizer"
)

type wordCountConfig struct {
	wordsPerToken float64
	maxTokens     int
}

// WordCountOption configures NewWordCountTokenizer.
type WordCountOption func(*wordCountConfig)

// WithWordsPerToken sets the average words-per-token ratio. Must be > 0;
// values <= 0 are ignored. Default 1.0.
func WithWordsPerToken(wpt float64) WordCountOption {
	return func(cfg *wordCountConfig) {
		if wpt > 0 {
			cfg.wordsPerToken = wpt
		}
	}
}

// WithWordCountMaxTokens sets the context window MaxTokens() reports.
func WithWordCountMaxTokens(n int) WordCountOption {
	return func(cfg *wordCountConfig) {
		if n > 0 {
			cfg.maxTokens = n
		}
	}
}

// NewWordCountTokenizer estimates tokens by counting Unicode-whitespace
// separated words and dividing by wordsPerToken. It needs no loaded vocabulary,
// making it a cheap default for tests and the hybrid-chunker examples in
// spec.md's end-to-end scenarios.
func NewWordCountTokenizer(opts ...WordCountOption) tokenizer.Tokenizer {
	cfg := &wordCountConfig{wordsPerToken: 1.0}
	for _, opt := range opts {
		opt(cfg)
	}
	return tokenizer.New(func(s string) int {
		return int(float64(countWords(s)) / cfg.wordsPerToken)
	}, cfg.maxTokens)
}

func countWords(text string) int {
	words := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if inWord {
				words++
				inWord = false
			}
		} else {
			inWord = true
		}
	}
	if inWord {
		words++
	}
	return words
}
