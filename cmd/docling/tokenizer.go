package main

import (
	"fmt"

	"github.com/kaidoc/docling/pkg/tokenizer"
	tokenizerBuiltin "github.com/kaidoc/docling/pkg/tokenizer/builtin"
)

// createTokenizer resolves a --tokenizer value into a Tokenizer, adapted
// from cmd/chunky/chunking.go's createTokenizer switch: "char" and "word"
// select the cheap builtin estimators, anything else is assumed to name a
// tiktoken encoding.
func createTokenizer(name string, maxTokens int) (tokenizer.Tokenizer, error) {
	switch name {
	case "char":
		return tokenizerBuiltin.NewCharCountTokenizer(tokenizerBuiltin.WithCharCountMaxTokens(maxTokens)), nil
	case "word":
		return tokenizerBuiltin.NewWordCountTokenizer(tokenizerBuiltin.WithWordCountMaxTokens(maxTokens)), nil
	default:
		tok, err := tokenizerBuiltin.NewTiktokenTokenizer(
			tokenizerBuiltin.WithEncoding(name),
			tokenizerBuiltin.WithMaxTokens(maxTokens),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create tiktoken tokenizer with encoding %q: %w", name, err)
		}
		return tok, nil
	}
}
