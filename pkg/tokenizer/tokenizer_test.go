package tokenizer

import "testing"

func TestNew_DelegatesToCounter(t *testing.T) {
	tok := New(func(s string) int { return len(s) }, 8192)
	if got := tok.CountTokens("abcd"); got != 4 {
		t.Fatalf("CountTokens() = %d, want 4", got)
	}
	if got := tok.MaxTokens(); got != 8192 {
		t.Fatalf("MaxTokens() = %d, want 8192", got)
	}
}

func TestNew_DeterministicForFixedInput(t *testing.T) {
	tok := New(func(s string) int { return len(s) }, 0)
	a := tok.CountTokens("same input")
	b := tok.CountTokens("same input")
	if a != b {
		t.Fatalf("CountTokens() not deterministic: %d != %d", a, b)
	}
}
