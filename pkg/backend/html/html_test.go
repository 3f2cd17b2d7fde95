package html

import (
	"context"
	"strings"
	"testing"

	"github.com/kaidoc/docling/internal/docctx"
	"github.com/kaidoc/docling/pkg/document"
	"github.com/kaidoc/docling/pkg/input"
)

func TestConvert_HeadingsAndParagraph(t *testing.T) {
	src := "<html><body><h1>Title</h1><p>Body text.</p></body></html>"
	d := input.FromBytes([]byte(src), "doc.html")

	doc, err := New().Convert(context.Background(), d)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if err := document.Validate(doc); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if len(doc.Root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(doc.Root.Children))
	}
	h := doc.Root.Children[0]
	if h.Kind != document.KindHeading || h.HeadingLevel != 1 {
		t.Fatalf("child 0 = %+v, want Heading(1)", h)
	}
	if got := h.PlainText(); got != "Title" {
		t.Fatalf("heading text = %q", got)
	}
	p := doc.Root.Children[1]
	if p.Kind != document.KindParagraph || p.PlainText() != "Body text." {
		t.Fatalf("paragraph = %+v", p)
	}
}

func TestConvert_InlineFormattingAndLink(t *testing.T) {
	src := `<p><strong>bold</strong> <em>italic</em> <a href="https://example.com">link</a></p>`
	d := input.FromBytes([]byte(src), "fmt.html")
	doc, err := New().Convert(context.Background(), d)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	para := doc.Root.Children[0]
	var sawBold, sawItalic, sawLink bool
	para.Walk(func(n *document.Node) bool {
		if n.Kind == document.KindText && n.Text.Formatting != nil {
			f := n.Text.Formatting
			sawBold = sawBold || f.Bold
			sawItalic = sawItalic || f.Italic
			sawLink = sawLink || (f.Link != nil && *f.Link == "https://example.com")
		}
		return true
	})
	if !sawBold || !sawItalic || !sawLink {
		t.Fatalf("missing formatting: bold=%v italic=%v link=%v", sawBold, sawItalic, sawLink)
	}
}

func TestConvert_ListsOrderedAndUnordered(t *testing.T) {
	src := "<ul><li>one</li><li>two</li></ul><ol><li>first</li></ol>"
	d := input.FromBytes([]byte(src), "list.html")
	doc, err := New().Convert(context.Background(), d)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if len(doc.Root.Children) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(doc.Root.Children))
	}
	if doc.Root.Children[0].ListOrdered {
		t.Fatalf("first list should be unordered")
	}
	if !doc.Root.Children[1].ListOrdered {
		t.Fatalf("second list should be ordered")
	}
}

// TestConvert_MalformedTablePadsShortRows implements the malformed-HTML table
// scenario: a table whose rows omit closing tags and whose second row has
// fewer cells than the header. Conversion must still succeed, pad the short
// row, and record a warning describing the padding.
func TestConvert_MalformedTablePadsShortRows(t *testing.T) {
	src := "<table><tr><td>a<td>b<tr><td>c</table>"
	d := input.FromBytes([]byte(src), "table.html")

	ctx := docctx.WithWarnings(context.Background())
	doc, err := New().Convert(ctx, d)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if err := document.Validate(doc); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if len(doc.Root.Children) != 1 || doc.Root.Children[0].Kind != document.KindTable {
		t.Fatalf("expected a single Table child, got %+v", doc.Root.Children)
	}
	table := doc.Root.Children[0].Table
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.GridWidth() != 2 {
		t.Fatalf("grid width = %d, want 2 (second row padded)", table.GridWidth())
	}
	if table.Rows[1][1].Content != "" {
		t.Fatalf("padded cell should be empty, got %q", table.Rows[1][1].Content)
	}

	warnings := docctx.Warnings(ctx)
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "padded") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a padding warning, got %v", warnings)
	}
}

func TestConvert_CodeBlockWithLanguageClass(t *testing.T) {
	src := `<pre><code class="language-go">fmt.Println("hi")</code></pre>`
	d := input.FromBytes([]byte(src), "code.html")
	doc, err := New().Convert(context.Background(), d)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	cb := doc.Root.Children[0]
	if cb.Kind != document.KindCodeBlock {
		t.Fatalf("kind = %s, want CodeBlock", cb.Kind)
	}
	if cb.CodeLanguage == nil || *cb.CodeLanguage != "go" {
		t.Fatalf("language = %v, want go", cb.CodeLanguage)
	}
	if cb.PlainText() != `fmt.Println("hi")` {
		t.Fatalf("code text = %q", cb.PlainText())
	}
}
