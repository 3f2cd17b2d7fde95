// Package markdown implements the CommonMark backend (spec.md §4.2
// "Markdown backend"), grounded on the teacher's goldmark-based parser in
// pkg/parser/builtin/default.go: the same four-stage shape (extract
// frontmatter, parse the goldmark AST, walk it, fold it into a tree) but
// folding into a document.Node tree instead of a flat heading Section list.
package markdown

import (
	"context"

	"github.com/kaidoc/docling/internal/docctx"
	"github.com/kaidoc/docling/internal/xlog"
	"github.com/kaidoc/docling/pkg/docerr"
	"github.com/kaidoc/docling/pkg/document"
	"github.com/kaidoc/docling/pkg/frontmatter"
	"github.com/kaidoc/docling/pkg/input"
	"github.com/yuin/goldmark"
	gparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"log/slog"
)

// Backend is the Markdown backend.MD implementation.
type Backend struct{}

// New constructs a Markdown Backend.
func New() *Backend { return &Backend{} }

func (*Backend) SupportedFormats() []input.Format {
	return []input.Format{input.FormatMarkdown}
}

// IsValid always returns true: CommonMark has no structural signature to
// reject upfront, matching spec.md's "empty input produces a Document root
// with zero children, not an error" invariant.
func (*Backend) IsValid(ctx context.Context, in *input.Descriptor) bool { return true }

func (b *Backend) Convert(ctx context.Context, in *input.Descriptor) (*document.Document, error) {
	raw, err := in.Bytes()
	if err != nil {
		return nil, docerr.Wrap(docerr.KindFileNotFound, err, "reading %s", in.Name()).WithPath(in.Name())
	}
	ctx = docctx.WithOrigin(ctx, docctx.Origin{Path: in.Name(), Format: string(input.FormatMarkdown)})
	logger := xlog.From(ctx)

	fm, body, err := frontmatter.Extract(raw)
	if err != nil {
		return nil, docerr.Wrap(docerr.KindParseError, err, "extracting frontmatter from %s", in.Name()).WithPath(in.Name())
	}

	md := goldmark.New(goldmark.WithParserOptions(gparser.WithAutoHeadingID()))
	astRoot := md.Parser().Parse(text.NewReader(body))
	if astRoot == nil {
		return nil, docerr.New(docerr.KindParseError, "goldmark produced a nil AST for %s", in.Name()).WithPath(in.Name())
	}

	doc := document.New(in.Name(), input.FormatMarkdown)
	for k, v := range fm {
		doc.Metadata.Extra[k] = v
	}

	w := &worker{src: body}
	for c := astRoot.FirstChild(); c != nil; c = c.NextSibling() {
		if node := w.convertBlock(c); node != nil {
			doc.Root.AppendChild(node)
		}
	}

	logger.Debug("markdown backend converted document",
		slog.Int("node_count", doc.NodeCount()),
		slog.Int("frontmatter_keys", len(fm)))

	return doc, nil
}
