package markdown

import (
	"strings"

	"github.com/kaidoc/docling/pkg/document"
	"github.com/yuin/goldmark/ast"
)

// worker walks a goldmark AST and folds it into document.Node children. It
// holds the source bytes needed to resolve ast.Text segments.
type worker struct {
	src []byte
}

// convertBlock maps one goldmark block-level node to a document.Node, or
// nil for nodes with nothing to contribute (e.g. an HTML comment block).
func (w *worker) convertBlock(n ast.Node) *document.Node {
	switch t := n.(type) {
	case *ast.Heading:
		h := document.NewHeading(t.Level)
		w.appendInlineChildren(h, t)
		return h

	case *ast.Paragraph:
		p := document.NewParagraph()
		w.appendInlineChildren(p, t)
		return p

	case *ast.TextBlock:
		p := document.NewParagraph()
		w.appendInlineChildren(p, t)
		return p

	case *ast.List:
		list := document.NewList(isOrderedMarker(t.Marker))
		for c := t.FirstChild(); c != nil; c = c.NextSibling() {
			if item := w.convertBlock(c); item != nil {
				list.AppendChild(item)
			}
		}
		return list

	case *ast.ListItem:
		item := document.NewListItem()
		for c := t.FirstChild(); c != nil; c = c.NextSibling() {
			if child := w.convertBlock(c); child != nil {
				item.AppendChild(child)
			}
		}
		return item

	case *ast.FencedCodeBlock:
		var lang *string
		if info := t.Info; info != nil {
			text := string(info.Text(w.src))
			if fields := strings.Fields(text); len(fields) > 0 {
				lang = &fields[0]
			}
		}
		code := document.NewCodeBlock(lang)
		code.AppendChild(document.NewText(document.TextItem{Content: literalLines(t, w.src)}))
		return code

	case *ast.CodeBlock:
		code := document.NewCodeBlock(nil)
		code.AppendChild(document.NewText(document.TextItem{Content: literalLines(t, w.src)}))
		return code

	case *ast.Blockquote:
		bq := document.NewBlockquote()
		for c := t.FirstChild(); c != nil; c = c.NextSibling() {
			if child := w.convertBlock(c); child != nil {
				bq.AppendChild(child)
			}
		}
		return bq

	case *ast.ThematicBreak:
		return document.NewHorizontalRule()

	case *ast.HTMLBlock:
		p := document.NewParagraph()
		p.AppendChild(document.NewText(document.TextItem{Content: htmlBlockText(t, w.src)}))
		return p

	default:
		// Unknown block kind: recurse into children as a generic Section so
		// nothing in reading order is silently dropped.
		sec := document.NewSection()
		any := false
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if child := w.convertBlock(c); child != nil {
				sec.AppendChild(child)
				any = true
			}
		}
		if !any {
			return nil
		}
		return sec
	}
}

// appendInlineChildren walks the inline children of an ast node carrying
// text (Heading, Paragraph, TextBlock) and appends one Text node per inline
// run, merging nested formatting additively.
func (w *worker) appendInlineChildren(parent *document.Node, n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.appendInline(parent, c, nil)
	}
}

func (w *worker) appendInline(parent *document.Node, n ast.Node, inherited *document.Formatting) {
	switch t := n.(type) {
	case *ast.Text:
		content := string(t.Segment.Value(w.src))
		if t.SoftLineBreak() {
			content += " "
		}
		if t.HardLineBreak() {
			content += "\n"
		}
		parent.AppendChild(document.NewText(document.TextItem{Content: content, Formatting: cloneFmt(inherited)}))

	case *ast.String:
		parent.AppendChild(document.NewText(document.TextItem{Content: string(t.Value), Formatting: cloneFmt(inherited)}))

	case *ast.CodeSpan:
		f := mergeFlag(inherited, func(f *document.Formatting) { f.Code = true })
		for c := t.FirstChild(); c != nil; c = c.NextSibling() {
			w.appendInline(parent, c, f)
		}

	case *ast.Emphasis:
		var f *document.Formatting
		if t.Level >= 2 {
			f = mergeFlag(inherited, func(f *document.Formatting) { f.Bold = true })
		} else {
			f = mergeFlag(inherited, func(f *document.Formatting) { f.Italic = true })
		}
		for c := t.FirstChild(); c != nil; c = c.NextSibling() {
			w.appendInline(parent, c, f)
		}

	case *ast.Link:
		url := string(t.Destination)
		f := mergeFlag(inherited, func(f *document.Formatting) { f.Link = &url })
		for c := t.FirstChild(); c != nil; c = c.NextSibling() {
			w.appendInline(parent, c, f)
		}

	case *ast.AutoLink:
		url := string(t.URL(w.src))
		f := mergeFlag(inherited, func(f *document.Formatting) { f.Link = &url })
		parent.AppendChild(document.NewText(document.TextItem{Content: url, Formatting: cloneFmt(f)}))

	case *ast.Image:
		img := document.NewImage()
		img.Metadata.Extra["url"] = string(t.Destination)
		if alt := w.inlinePlainText(t); alt != "" {
			img.Metadata.Extra["alt"] = alt
		}
		parent.AppendChild(img)

	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.appendInline(parent, c, inherited)
		}
	}
}

// inlinePlainText concatenates the Text descendants of n, used for image alt
// text.
func (w *worker) inlinePlainText(n ast.Node) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(m ast.Node) {
		if t, ok := m.(*ast.Text); ok {
			b.Write(t.Segment.Value(w.src))
			return
		}
		for c := m.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func cloneFmt(f *document.Formatting) *document.Formatting {
	if f.IsZero() {
		return nil
	}
	c := *f
	return &c
}

func mergeFlag(base *document.Formatting, set func(*document.Formatting)) *document.Formatting {
	var f document.Formatting
	if base != nil {
		f = *base
	}
	set(&f)
	return &f
}

func isOrderedMarker(marker byte) bool {
	return marker == '.' || marker == ')'
}

func literalLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

func htmlBlockText(n *ast.HTMLBlock, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	if n.HasClosure() {
		b.Write(n.ClosureLine.Value(src))
	}
	return b.String()
}
