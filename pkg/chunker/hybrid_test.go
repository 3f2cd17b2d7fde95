package chunker

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/kaidoc/docling/pkg/document"
	"github.com/kaidoc/docling/pkg/tokenizer"
)

func wordCountTokenizer(maxTokens int) tokenizer.Tokenizer {
	return tokenizer.New(func(s string) int { return len(strings.Fields(s)) }, maxTokens)
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "word" + strconv.Itoa(i)
	}
	return strings.Join(parts, " ")
}

// TestHybridChunker_SplitsOversizedChunk implements spec.md's "Hybrid
// chunker splits oversized" end-to-end scenario.
func TestHybridChunker_SplitsOversizedChunk(t *testing.T) {
	doc := document.New("big.md", document.FormatMarkdown)
	p := document.NewParagraph()
	p.AppendChild(document.NewText(document.TextItem{Content: words(500)}))
	doc.Root.AppendChild(p)

	hc, err := NewHybridChunker(WithHybridTokenizer(wordCountTokenizer(8192)), WithHybridMaxTokens(100))
	if err != nil {
		t.Fatalf("NewHybridChunker() error: %v", err)
	}

	chunks := collect(context.Background(), hc, doc)
	if len(chunks) < 5 {
		t.Fatalf("got %d chunks, want >= 5", len(chunks))
	}
	tok := wordCountTokenizer(8192)
	for i, c := range chunks {
		if n := tok.CountTokens(Contextualize(c)); n > 100 {
			t.Fatalf("chunk %d has %d tokens, want <= 100", i, n)
		}
		if c.Index != i {
			t.Fatalf("chunk %d has Index %d", i, c.Index)
		}
	}
}

// TestHybridChunker_MergesPeers implements spec.md's "Hybrid chunker merges
// peers" end-to-end scenario.
func TestHybridChunker_MergesPeers(t *testing.T) {
	doc := document.New("small.md", document.FormatMarkdown)
	h := document.NewHeading(1)
	h.AppendChild(document.NewText(document.TextItem{Content: "Section"}))
	doc.Root.AppendChild(h)

	for i := 0; i < 5; i++ {
		p := document.NewParagraph()
		p.AppendChild(document.NewText(document.TextItem{Content: words(10)}))
		doc.Root.AppendChild(p)
	}

	hc, err := NewHybridChunker(WithHybridTokenizer(wordCountTokenizer(8192)), WithHybridMaxTokens(100))
	if err != nil {
		t.Fatalf("NewHybridChunker() error: %v", err)
	}

	chunks := collect(context.Background(), hc, doc)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 (heading + one merged body chunk)", len(chunks))
	}
	if chunks[0].Text != "Section" {
		t.Fatalf("chunks[0].Text = %q, want %q", chunks[0].Text, "Section")
	}
	if got := strings.Count(chunks[1].Text, "\n"); got != 4 {
		t.Fatalf("merged chunk has %d newlines, want 4 (5 paragraphs joined)", got)
	}
	if len(chunks[1].Headings) != 1 || chunks[1].Headings[0] != "Section" {
		t.Fatalf("chunks[1].Headings = %v, want [Section]", chunks[1].Headings)
	}
}

func TestHybridChunker_DoesNotMergeAcrossHeadings(t *testing.T) {
	doc := document.New("two-sections.md", document.FormatMarkdown)

	h1 := document.NewHeading(1)
	h1.AppendChild(document.NewText(document.TextItem{Content: "One"}))
	doc.Root.AppendChild(h1)
	p1 := document.NewParagraph()
	p1.AppendChild(document.NewText(document.TextItem{Content: "alpha"}))
	doc.Root.AppendChild(p1)

	h2 := document.NewHeading(1)
	h2.AppendChild(document.NewText(document.TextItem{Content: "Two"}))
	doc.Root.AppendChild(h2)
	p2 := document.NewParagraph()
	p2.AppendChild(document.NewText(document.TextItem{Content: "beta"}))
	doc.Root.AppendChild(p2)

	hc, err := NewHybridChunker(WithHybridTokenizer(wordCountTokenizer(8192)), WithHybridMaxTokens(100))
	if err != nil {
		t.Fatalf("NewHybridChunker() error: %v", err)
	}

	chunks := collect(context.Background(), hc, doc)
	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4 (no merge across differing heading paths)", len(chunks))
	}
}

func TestNewHybridChunker_RejectsNonPositiveMaxTokens(t *testing.T) {
	_, err := NewHybridChunker(WithHybridTokenizer(wordCountTokenizer(8192)), WithHybridMaxTokens(0))
	if err == nil {
		t.Fatal("NewHybridChunker() error = nil, want non-nil")
	}
}

func TestNewHybridChunker_RequiresTokenizer(t *testing.T) {
	_, err := NewHybridChunker(WithHybridMaxTokens(100))
	if err == nil {
		t.Fatal("NewHybridChunker() error = nil, want non-nil")
	}
}
