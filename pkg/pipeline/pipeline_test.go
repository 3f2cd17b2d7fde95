package pipeline

import (
	"context"
	"testing"

	"github.com/kaidoc/docling/pkg/backend"
	"github.com/kaidoc/docling/pkg/backend/html"
	"github.com/kaidoc/docling/pkg/backend/markdown"
	"github.com/kaidoc/docling/pkg/document"
	"github.com/kaidoc/docling/pkg/input"
)

func TestConvert_SuccessStampsConversionID(t *testing.T) {
	r := backend.NewRegistry()
	r.Register(markdown.New())
	p := New(r)

	in := input.FromBytes([]byte("# Title\n\nBody text.\n"), "doc.md")
	res := p.Convert(context.Background(), in)

	if res.Status != StatusSuccess {
		t.Fatalf("status = %v, want Success (errors=%v)", res.Status, res.Errors)
	}
	if res.Document == nil {
		t.Fatalf("document is nil")
	}
	if _, ok := res.Document.Metadata.Extra["conversion_id"]; !ok {
		t.Fatalf("conversion_id not stamped into Metadata.Extra")
	}
	if res.Metrics.NodeCount == 0 {
		t.Fatalf("node count = 0, want > 0")
	}
	if res.Metrics.InputSizeByte == 0 {
		t.Fatalf("input size = 0, want > 0")
	}
}

func TestConvert_UnsupportedFormatIsFailure(t *testing.T) {
	r := backend.NewRegistry()
	p := New(r)

	in := input.FromBytes([]byte("anything"), "doc.unknownext")
	res := p.Convert(context.Background(), in)

	if res.Status != StatusFailure {
		t.Fatalf("status = %v, want Failure", res.Status)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", res.Errors)
	}
	if res.Document != nil {
		t.Fatalf("document = %+v, want nil on failure", res.Document)
	}
}

func TestConvert_PartialStatusOnWarnings(t *testing.T) {
	r := backend.NewRegistry()
	r.Register(html.New())
	p := New(r)

	// An unclosed tag is tolerated with a warning rather than rejected.
	in := input.FromBytes([]byte("<p>Unclosed paragraph"), "doc.html")
	res := p.Convert(context.Background(), in)

	if res.Document == nil {
		t.Fatalf("document is nil, errors=%v", res.Errors)
	}
	if res.Status != StatusPartial && res.Status != StatusSuccess {
		t.Fatalf("status = %v, want Partial or Success", res.Status)
	}
}

func TestNewDefault_RegistersProvidedBackends(t *testing.T) {
	p := NewDefault(markdown.New(), html.New())

	in := input.FromBytes([]byte("# Hi\n"), "doc.md")
	res := p.Convert(context.Background(), in)
	if res.Status != StatusSuccess {
		t.Fatalf("status = %v, want Success", res.Status)
	}
	if res.Document.Metadata.Format != document.FormatMarkdown {
		t.Fatalf("format = %v, want Markdown", res.Document.Metadata.Format)
	}
}
