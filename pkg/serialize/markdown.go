package serialize

import (
	"strconv"
	"strings"

	"github.com/kaidoc/docling/pkg/document"
)

// ToMarkdown renders doc as Markdown source, the lossy inverse of the
// Markdown backend (spec.md §6 "Markdown export"): heading levels restored
// as `#` runs, lists re-bulleted, inline formatting re-encoded as
// `**bold**`/`*italic*`/`` `code` ``/`[text](url)`.
func ToMarkdown(doc *document.Document) string {
	var b strings.Builder
	writeChildren(&b, doc.Root)
	return strings.TrimRight(b.String(), "\n")
}

func writeChildren(b *strings.Builder, n *document.Node) {
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString("\n")
		}
		writeNode(b, c)
	}
}

func writeNode(b *strings.Builder, n *document.Node) {
	switch n.Kind {
	case document.KindHeading:
		b.WriteString(strings.Repeat("#", clampLevel(n.HeadingLevel)))
		b.WriteString(" ")
		b.WriteString(inlineText(n))
		b.WriteString("\n")
	case document.KindParagraph:
		b.WriteString(inlineText(n))
		b.WriteString("\n")
	case document.KindBlockquote:
		for _, line := range strings.Split(inlineText(n), "\n") {
			b.WriteString("> ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	case document.KindCodeBlock:
		lang := ""
		if n.CodeLanguage != nil {
			lang = *n.CodeLanguage
		}
		b.WriteString("```")
		b.WriteString(lang)
		b.WriteString("\n")
		b.WriteString(n.PlainText())
		b.WriteString("\n```\n")
	case document.KindList:
		writeList(b, n)
	case document.KindTable:
		writeTable(b, n)
	case document.KindHorizontalRule:
		b.WriteString("---\n")
	case document.KindImage:
		b.WriteString(imageMarkdown(n))
		b.WriteString("\n")
	case document.KindFormula:
		b.WriteString("$$")
		b.WriteString(n.PlainText())
		b.WriteString("$$\n")
	case document.KindSection, document.KindDocument:
		writeChildren(b, n)
	default:
		b.WriteString(inlineText(n))
		b.WriteString("\n")
	}
}

func writeList(b *strings.Builder, n *document.Node) {
	for i, item := range n.Children {
		if item.Kind != document.KindListItem {
			continue
		}
		if n.ListOrdered {
			b.WriteString(strconv.Itoa(i + 1))
			b.WriteString(". ")
		} else {
			b.WriteString("- ")
		}
		b.WriteString(inlineText(item))
		b.WriteString("\n")
	}
}

func writeTable(b *strings.Builder, n *document.Node) {
	if n.Table == nil {
		return
	}
	t := n.Table
	if t.Caption != nil {
		b.WriteString(*t.Caption)
		b.WriteString("\n\n")
	}
	if t.HasHeader && len(t.Headers) > 0 {
		b.WriteString("| ")
		b.WriteString(strings.Join(t.Headers, " | "))
		b.WriteString(" |\n|")
		for range t.Headers {
			b.WriteString(" --- |")
		}
		b.WriteString("\n")
	}
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = c.Content
		}
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
}

func imageMarkdown(n *document.Node) string {
	alt := ""
	if v, ok := n.Metadata.Extra["alt"].(string); ok {
		alt = v
	}
	url := ""
	if v, ok := n.Metadata.Extra["url"].(string); ok {
		url = v
	}
	return "![" + alt + "](" + url + ")"
}

// inlineText renders n's own Text children (or n itself, if it is a Text
// node) with inline formatting re-encoded, in reading order.
func inlineText(n *document.Node) string {
	var b strings.Builder
	var walk func(*document.Node)
	walk = func(m *document.Node) {
		if m.Kind == document.KindText && m.Text != nil {
			b.WriteString(formatInline(*m.Text))
			return
		}
		for _, c := range m.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func formatInline(item document.TextItem) string {
	text := item.Content
	f := item.Formatting
	if f == nil {
		return text
	}
	if f.Code {
		text = "`" + text + "`"
	}
	if f.Bold {
		text = "**" + text + "**"
	}
	if f.Italic {
		text = "*" + text + "*"
	}
	if f.Strikethrough {
		text = "~~" + text + "~~"
	}
	if f.Link != nil {
		text = "[" + text + "](" + *f.Link + ")"
	}
	return text
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
