package serialize

import (
	"strings"
	"testing"

	"github.com/kaidoc/docling/pkg/document"
)

func buildSampleDoc() *document.Document {
	doc := document.New("/path/to/doc.md", document.FormatMarkdown)

	h := document.NewHeading(1)
	h.AppendChild(document.NewText(document.TextItem{Content: "Title"}))
	doc.Root.AppendChild(h)

	p := document.NewParagraph()
	p.AppendChild(document.NewText(document.TextItem{Content: "Some text"}))
	doc.Root.AppendChild(p)

	return doc
}

func TestToJSON_MatchesTaggedVariantShape(t *testing.T) {
	doc := buildSampleDoc()
	data, err := ToJSON(doc)
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"node_type":{"Heading":{"level":1}}`) {
		t.Fatalf("missing tagged Heading node_type, got %s", s)
	}
	if !strings.Contains(s, `"node_type":"Paragraph"`) {
		t.Fatalf("missing bare Paragraph node_type, got %s", s)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	doc := buildSampleDoc()
	data, err := ToJSON(doc)
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}
	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error: %v", err)
	}

	if got.Metadata.Origin != doc.Metadata.Origin {
		t.Fatalf("origin = %q, want %q", got.Metadata.Origin, doc.Metadata.Origin)
	}
	if got.Metadata.Format != doc.Metadata.Format {
		t.Fatalf("format = %q, want %q", got.Metadata.Format, doc.Metadata.Format)
	}
	if len(got.Root.Children) != len(doc.Root.Children) {
		t.Fatalf("children = %d, want %d", len(got.Root.Children), len(doc.Root.Children))
	}

	h := got.Root.Children[0]
	if h.Kind != document.KindHeading || h.HeadingLevel != 1 {
		t.Fatalf("child 0 = %+v, want Heading(1)", h)
	}
	if h.PlainText() != "Title" {
		t.Fatalf("child 0 text = %q, want Title", h.PlainText())
	}
	if h.Metadata.Depth != 1 || h.Metadata.Index != 0 {
		t.Fatalf("child 0 metadata = %+v, want depth 1 index 0", h.Metadata)
	}

	p := got.Root.Children[1]
	if p.Kind != document.KindParagraph || p.PlainText() != "Some text" {
		t.Fatalf("child 1 = %+v, want Paragraph(Some text)", p)
	}

	if err := document.Validate(got); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestJSONRoundTrip_ListAndCodeBlock(t *testing.T) {
	doc := document.New("doc.md", document.FormatMarkdown)
	list := document.NewList(true)
	item := document.NewListItem()
	item.AppendChild(document.NewText(document.TextItem{Content: "one"}))
	list.AppendChild(item)
	doc.Root.AppendChild(list)

	lang := "go"
	code := document.NewCodeBlock(&lang)
	code.AppendChild(document.NewText(document.TextItem{Content: "fmt.Println()"}))
	doc.Root.AppendChild(code)

	data, err := ToJSON(doc)
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}
	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error: %v", err)
	}

	gotList := got.Root.Children[0]
	if gotList.Kind != document.KindList || !gotList.ListOrdered {
		t.Fatalf("list = %+v, want ordered List", gotList)
	}
	gotCode := got.Root.Children[1]
	if gotCode.Kind != document.KindCodeBlock || gotCode.CodeLanguage == nil || *gotCode.CodeLanguage != "go" {
		t.Fatalf("code block = %+v, want CodeBlock(go)", gotCode)
	}
}

func TestToJSON_TableNodeCarriesData(t *testing.T) {
	doc := document.New("doc.csv", document.FormatCSV)
	table := document.NewTable(document.TableData{
		HasHeader: true,
		Headers:   []string{"a", "b"},
		Rows:      [][]document.TableCell{{document.NewCell("1"), document.NewCell("2")}},
	})
	doc.Root.AppendChild(table)

	data, err := ToJSON(doc)
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}
	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error: %v", err)
	}
	gotTable := got.Root.Children[0]
	if gotTable.Kind != document.KindTable || gotTable.Table == nil {
		t.Fatalf("table = %+v, want Table with data", gotTable)
	}
	if len(gotTable.Table.Headers) != 2 || gotTable.Table.Headers[0] != "a" {
		t.Fatalf("headers = %+v", gotTable.Table.Headers)
	}
}

func TestToPlainText_FlattensTablesWithTabs(t *testing.T) {
	doc := buildSampleDoc()
	table := document.NewTable(document.TableData{
		HasHeader: true,
		Headers:   []string{"Col1", "Col2"},
		Rows:      [][]document.TableCell{{document.NewCell("a"), document.NewCell("b")}},
	})
	doc.Root.AppendChild(table)

	text := ToPlainText(doc)
	if !strings.Contains(text, "Title") || !strings.Contains(text, "Some text") {
		t.Fatalf("plain text missing expected content: %q", text)
	}
	if !strings.Contains(text, "Col1\tCol2") || !strings.Contains(text, "a\tb") {
		t.Fatalf("plain text missing flattened table: %q", text)
	}
}

func TestToMarkdown_RendersHeadingAndParagraph(t *testing.T) {
	doc := buildSampleDoc()
	md := ToMarkdown(doc)
	if !strings.Contains(md, "# Title") {
		t.Fatalf("markdown missing heading, got %q", md)
	}
	if !strings.Contains(md, "Some text") {
		t.Fatalf("markdown missing paragraph, got %q", md)
	}
}

func TestToMarkdown_ReencodesInlineFormatting(t *testing.T) {
	doc := document.New("doc.md", document.FormatMarkdown)
	p := document.NewParagraph()
	p.AppendChild(document.NewText(document.TextItem{
		Content:    "bold text",
		Formatting: &document.Formatting{Bold: true},
	}))
	doc.Root.AppendChild(p)

	md := ToMarkdown(doc)
	if !strings.Contains(md, "**bold text**") {
		t.Fatalf("markdown missing bold encoding, got %q", md)
	}
}

func TestToMarkdown_RendersOrderedList(t *testing.T) {
	doc := document.New("doc.md", document.FormatMarkdown)
	list := document.NewList(true)
	for _, text := range []string{"first", "second"} {
		item := document.NewListItem()
		item.AppendChild(document.NewText(document.TextItem{Content: text}))
		list.AppendChild(item)
	}
	doc.Root.AppendChild(list)

	md := ToMarkdown(doc)
	if !strings.Contains(md, "1. first") || !strings.Contains(md, "2. second") {
		t.Fatalf("markdown missing ordered list items, got %q", md)
	}
}
