// Package tokenizer defines the Tokenizer abstraction pkg/chunker's hybrid
// chunker measures chunks against, grounded on the teacher's
// pkg/tokenizer.Tokenizer + MakeTokenizer(TokenCounter) functional
// constructor. The teacher's Tokenizer also walks a whole Section tree
// up front (Tokenize); that step isn't needed here because the hybrid
// chunker counts tokens chunk-by-chunk as it builds its lazy sequence, so
// only the counting half of the interface survives, generalized with the
// MaxTokens() a context-window-aware chunker needs.
package tokenizer

// Tokenizer counts tokens in already-materialized text. CountTokens must be
// deterministic: ε=0 for the same input.
type Tokenizer interface {
	// CountTokens returns the number of tokens s would encode to.
	CountTokens(s string) int
	// MaxTokens returns the model context window this tokenizer was built
	// for, or 0 if the tokenizer has no opinion on a window size.
	MaxTokens() int
}

// Counter is a function computing a token count for a string.
type Counter func(s string) int

type funcTokenizer struct {
	count     Counter
	maxTokens int
}

func (t *funcTokenizer) CountTokens(s string) int { return t.count(s) }
func (t *funcTokenizer) MaxTokens() int            { return t.maxTokens }

// New builds a Tokenizer from a raw counting function and a context window
// size, mirroring the teacher's MakeTokenizer(TokenCounter) constructor.
func New(count Counter, maxTokens int) Tokenizer {
	return &funcTokenizer{count: count, maxTokens: maxTokens}
}
