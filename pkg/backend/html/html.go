// Package html implements the error-tolerant HTML backend (spec.md §4.2
// "HTML backend"), built on golang.org/x/net/html -- the tokenizer the rest
// of the retrieval pack reaches for when it needs browser-grade tolerant
// parsing (intelligencedev-manifold imports golang.org/x/net directly, and
// transitively through html-to-markdown/cascadia for the same reason: an
// unknown or unclosed tag must never abort the parse).
package html

import (
	"bytes"
	"context"
	"strings"

	"github.com/kaidoc/docling/internal/docctx"
	"github.com/kaidoc/docling/internal/xlog"
	"github.com/kaidoc/docling/pkg/docerr"
	"github.com/kaidoc/docling/pkg/document"
	"github.com/kaidoc/docling/pkg/input"
	xhtml "golang.org/x/net/html"
)

// Backend is the HTML backend implementation.
type Backend struct{}

// New constructs an HTML Backend.
func New() *Backend { return &Backend{} }

func (*Backend) SupportedFormats() []input.Format {
	return []input.Format{input.FormatHTML}
}

func (*Backend) IsValid(ctx context.Context, in *input.Descriptor) bool { return true }

func (b *Backend) Convert(ctx context.Context, in *input.Descriptor) (*document.Document, error) {
	raw, err := in.Bytes()
	if err != nil {
		return nil, docerr.Wrap(docerr.KindFileNotFound, err, "reading %s", in.Name()).WithPath(in.Name())
	}
	ctx = docctx.WithOrigin(ctx, docctx.Origin{Path: in.Name(), Format: string(input.FormatHTML)})
	logger := xlog.From(ctx)

	root, err := xhtml.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, docerr.Wrap(docerr.KindParseError, err, "parsing %s", in.Name()).WithPath(in.Name())
	}

	body := findBody(root)
	doc := document.New(in.Name(), input.FormatHTML)
	w := &worker{ctx: ctx}
	if body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if node := w.convertBlock(c); node != nil {
				doc.Root.AppendChild(node)
			}
		}
	}

	logger.Debug("html backend converted document", "node_count", doc.NodeCount(), "warnings", len(docctx.Warnings(ctx)))
	return doc, nil
}

func findBody(n *xhtml.Node) *xhtml.Node {
	if n.Type == xhtml.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

type worker struct {
	ctx context.Context
}

func headingLevel(tag string) (int, bool) {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0'), true
	}
	return 0, false
}

func (w *worker) convertBlock(n *xhtml.Node) *document.Node {
	if n.Type == xhtml.CommentNode || n.Type == xhtml.DoctypeNode {
		return nil
	}
	if n.Type == xhtml.TextNode {
		text := n.Data
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return document.NewText(document.TextItem{Content: text})
	}
	if n.Type != xhtml.ElementNode {
		return nil
	}

	if level, ok := headingLevel(n.Data); ok {
		h := document.NewHeading(level)
		w.appendInlineChildren(h, n, nil)
		return h
	}

	switch n.Data {
	case "p", "div", "section", "article", "span":
		container := document.NewParagraph()
		if n.Data != "p" {
			container = document.NewSection()
		}
		w.appendInlineChildren(container, n, nil)
		if len(container.Children) == 0 {
			return nil
		}
		return container

	case "ul":
		list := document.NewList(false)
		w.appendListItems(list, n)
		return list

	case "ol":
		list := document.NewList(true)
		w.appendListItems(list, n)
		return list

	case "li":
		item := document.NewListItem()
		w.appendInlineChildren(item, n, nil)
		return item

	case "table":
		return w.convertTable(n)

	case "blockquote":
		bq := document.NewBlockquote()
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := w.convertBlock(c); child != nil {
				bq.AppendChild(child)
			}
		}
		return bq

	case "hr":
		return document.NewHorizontalRule()

	case "pre":
		return w.convertPre(n)

	case "img":
		img := document.NewImage()
		img.Metadata.Extra["url"] = attr(n, "src")
		if alt := attr(n, "alt"); alt != "" {
			img.Metadata.Extra["alt"] = alt
		}
		return img

	default:
		// Unknown tags become generic containers per spec.md §4.2.
		sec := document.NewSection()
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := w.convertBlock(c); child != nil {
				sec.AppendChild(child)
			}
		}
		if len(sec.Children) == 0 {
			docctx.Warn(w.ctx, "discarded unknown empty element <"+n.Data+">")
			return nil
		}
		return sec
	}
}

func (w *worker) appendListItems(list *document.Node, n *xhtml.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.ElementNode && c.Data == "li" {
			if item := w.convertBlock(c); item != nil {
				list.AppendChild(item)
			}
		}
	}
}

func (w *worker) convertPre(n *xhtml.Node) *document.Node {
	var codeChild *xhtml.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.ElementNode && c.Data == "code" {
			codeChild = c
			break
		}
	}
	var lang *string
	target := n
	if codeChild != nil {
		target = codeChild
		if cls := attr(codeChild, "class"); strings.HasPrefix(cls, "language-") {
			l := strings.TrimPrefix(cls, "language-")
			lang = &l
		}
	}
	code := document.NewCodeBlock(lang)
	code.AppendChild(document.NewText(document.TextItem{Content: plainText(target)}))
	return code
}

func (w *worker) appendInlineChildren(parent *document.Node, n *xhtml.Node, inherited *document.Formatting) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.appendInline(parent, c, inherited)
	}
}

func (w *worker) appendInline(parent *document.Node, n *xhtml.Node, inherited *document.Formatting) {
	switch n.Type {
	case xhtml.TextNode:
		if n.Data == "" {
			return
		}
		parent.AppendChild(document.NewText(document.TextItem{Content: n.Data, Formatting: cloneFmt(inherited)}))
		return
	case xhtml.CommentNode, xhtml.DoctypeNode:
		return
	case xhtml.ElementNode:
		// fallthrough to tag handling below
	default:
		return
	}

	switch n.Data {
	case "strong", "b":
		f := mergeFlag(inherited, func(f *document.Formatting) { f.Bold = true })
		w.appendInlineChildren(parent, n, f)
	case "em", "i":
		f := mergeFlag(inherited, func(f *document.Formatting) { f.Italic = true })
		w.appendInlineChildren(parent, n, f)
	case "u":
		f := mergeFlag(inherited, func(f *document.Formatting) { f.Underline = true })
		w.appendInlineChildren(parent, n, f)
	case "s", "strike", "del":
		f := mergeFlag(inherited, func(f *document.Formatting) { f.Strikethrough = true })
		w.appendInlineChildren(parent, n, f)
	case "code":
		f := mergeFlag(inherited, func(f *document.Formatting) { f.Code = true })
		w.appendInlineChildren(parent, n, f)
	case "a":
		href := attr(n, "href")
		f := mergeFlag(inherited, func(f *document.Formatting) { f.Link = &href })
		w.appendInlineChildren(parent, n, f)
	case "br":
		parent.AppendChild(document.NewText(document.TextItem{Content: "\n"}))
	case "img":
		img := document.NewImage()
		img.Metadata.Extra["url"] = attr(n, "src")
		if alt := attr(n, "alt"); alt != "" {
			img.Metadata.Extra["alt"] = alt
		}
		parent.AppendChild(img)
	default:
		w.appendInlineChildren(parent, n, inherited)
	}
}

func attr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func plainText(n *xhtml.Node) string {
	var b strings.Builder
	var walk func(*xhtml.Node)
	walk = func(m *xhtml.Node) {
		if m.Type == xhtml.TextNode {
			b.WriteString(m.Data)
			return
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
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
