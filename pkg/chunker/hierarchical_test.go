package chunker

import (
	"context"
	"testing"

	"github.com/kaidoc/docling/pkg/document"
)

func buildHeadingDoc() *document.Document {
	doc := document.New("doc.md", document.FormatMarkdown)

	h1 := document.NewHeading(1)
	h1.AppendChild(document.NewText(document.TextItem{Content: "Chapter 1"}))
	doc.Root.AppendChild(h1)

	h2 := document.NewHeading(2)
	h2.AppendChild(document.NewText(document.TextItem{Content: "Section 1.1"}))
	doc.Root.AppendChild(h2)

	p := document.NewParagraph()
	p.AppendChild(document.NewText(document.TextItem{Content: "Content here."}))
	doc.Root.AppendChild(p)

	return doc
}

func collect(ctx context.Context, c Chunker, doc *document.Document) []Chunk {
	var out []Chunk
	for chunk := range c.Chunk(ctx, doc) {
		out = append(out, chunk)
	}
	return out
}

// TestHierarchicalChunker_HeadingsAndParagraph implements spec.md's
// "Hierarchical chunker over a short Markdown doc" end-to-end scenario.
func TestHierarchicalChunker_HeadingsAndParagraph(t *testing.T) {
	doc := buildHeadingDoc()
	chunks := collect(context.Background(), NewHierarchicalChunker(), doc)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}

	if chunks[0].Text != "Chapter 1" || len(chunks[0].Headings) != 0 {
		t.Fatalf("chunk0 = %+v", chunks[0])
	}
	if chunks[1].Text != "Section 1.1" || len(chunks[1].Headings) != 1 || chunks[1].Headings[0] != "Chapter 1" {
		t.Fatalf("chunk1 = %+v", chunks[1])
	}
	if chunks[2].Text != "Content here." ||
		len(chunks[2].Headings) != 2 ||
		chunks[2].Headings[0] != "Chapter 1" ||
		chunks[2].Headings[1] != "Section 1.1" {
		t.Fatalf("chunk2 = %+v", chunks[2])
	}

	for i, c := range chunks {
		if c.Index != i {
			t.Fatalf("chunk %d has Index %d", i, c.Index)
		}
		if c.StartOffset >= c.EndOffset {
			t.Fatalf("chunk %d has non-increasing offsets %d..%d", i, c.StartOffset, c.EndOffset)
		}
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartOffset < chunks[i-1].EndOffset {
			t.Fatalf("chunk %d starts before chunk %d ends", i, i-1)
		}
	}
}

func TestHierarchicalChunker_EmptyDocumentYieldsNoChunks(t *testing.T) {
	doc := document.New("empty.md", document.FormatMarkdown)
	chunks := collect(context.Background(), NewHierarchicalChunker(), doc)
	if len(chunks) != 0 {
		t.Fatalf("got %d chunks, want 0", len(chunks))
	}
}

// TestHierarchicalChunker_HeadingOnlyDocument covers the boundary behavior:
// a lone, nested heading still yields a chunk, even when that heading's own
// text is empty, because its ancestor path is already populated.
func TestHierarchicalChunker_HeadingOnlyDocument(t *testing.T) {
	doc := document.New("empty-heading.md", document.FormatMarkdown)
	h1 := document.NewHeading(1)
	h1.AppendChild(document.NewText(document.TextItem{Content: "Title"}))
	doc.Root.AppendChild(h1)

	h2 := document.NewHeading(2)
	doc.Root.AppendChild(h2)

	chunks := collect(context.Background(), NewHierarchicalChunker(), doc)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[1].Text != "" {
		t.Fatalf("chunk1.Text = %q, want empty", chunks[1].Text)
	}
	if len(chunks[1].Headings) != 1 || chunks[1].Headings[0] != "Title" {
		t.Fatalf("chunk1.Headings = %v, want [Title]", chunks[1].Headings)
	}
}

func TestHierarchicalChunker_ListMerging(t *testing.T) {
	doc := document.New("list.md", document.FormatMarkdown)
	list := document.NewList(false)
	for _, text := range []string{"first", "second", "third"} {
		item := document.NewListItem()
		item.AppendChild(document.NewText(document.TextItem{Content: text}))
		list.AppendChild(item)
	}
	doc.Root.AppendChild(list)

	merged := collect(context.Background(), NewHierarchicalChunker(), doc)
	if len(merged) != 1 {
		t.Fatalf("merged: got %d chunks, want 1", len(merged))
	}
	if merged[0].Text != "first\nsecond\nthird" {
		t.Fatalf("merged[0].Text = %q", merged[0].Text)
	}

	split := collect(context.Background(), NewHierarchicalChunker(WithMergeListItems(false)), doc)
	if len(split) != 3 {
		t.Fatalf("split: got %d chunks, want 3", len(split))
	}
	if split[1].Text != "second" {
		t.Fatalf("split[1].Text = %q", split[1].Text)
	}
}

func TestHierarchicalChunker_ContextCancellationStopsEarly(t *testing.T) {
	doc := buildHeadingDoc()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chunks := collect(ctx, NewHierarchicalChunker(), doc)
	if len(chunks) != 0 {
		t.Fatalf("got %d chunks after cancellation, want 0", len(chunks))
	}
}

func TestContextualize_JoinsHeadingsCaptionAndText(t *testing.T) {
	caption := "Figure 1"
	c := Chunk{Headings: []string{"A", "B"}, Caption: &caption, Text: "body"}
	got := Contextualize(c)
	want := "A\nB\nFigure 1\nbody"
	if got != want {
		t.Fatalf("Contextualize() = %q, want %q", got, want)
	}
}
