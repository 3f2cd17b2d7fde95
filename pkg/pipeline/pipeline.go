// Package pipeline dispatches an input.Descriptor to the registered Backend
// for its format and wraps the result into a ConversionResult (spec.md §4.3
// "Pipeline"). Grounded on the teacher's RunCmd orchestration
// (cmd/chunky/run.go), generalized from one file-per-chunk CLI loop into a
// single reusable Convert call any caller (CLI or library) can use.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kaidoc/docling/internal/docctx"
	"github.com/kaidoc/docling/internal/xlog"
	"github.com/kaidoc/docling/pkg/backend"
	"github.com/kaidoc/docling/pkg/docerr"
	"github.com/kaidoc/docling/pkg/document"
	"github.com/kaidoc/docling/pkg/input"
)

// Status is the outcome of one conversion (spec.md §3 "ConversionResult").
type Status string

const (
	StatusSuccess Status = "Success"
	StatusPartial Status = "Partial"
	StatusFailure Status = "Failure"
)

// Metrics records the measurements spec.md's ConversionResult carries
// alongside the document.
type Metrics struct {
	DurationMS    int64
	InputSizeByte int64
	NodeCount     int
}

// Result wraps a conversion outcome: a Document on success or partial
// success, paired with its status, errors, warnings, and metrics.
type Result struct {
	Input    *input.Descriptor
	Document *document.Document
	Status   Status
	Errors   []error
	Warnings []string
	Metrics  Metrics
}

// Pipeline dispatches Descriptors to a Registry and produces Results.
type Pipeline struct {
	registry *backend.Registry
}

// New builds a Pipeline backed by registry.
func New(registry *backend.Registry) *Pipeline {
	return &Pipeline{registry: registry}
}

// NewDefault builds a Pipeline whose Registry holds backends, registered in
// the order given. It constructs no backend itself; callers that want to
// manage the Registry should build one themselves and use New instead.
func NewDefault(backends ...backend.Backend) *Pipeline {
	r := backend.NewRegistry()
	for _, b := range backends {
		r.Register(b)
	}
	return New(r)
}

// Convert dispatches in to the backend registered for its format, wraps the
// result into a Result, and never returns an error itself -- a hard failure
// is reported through Result.Status and Result.Errors instead, matching
// spec.md's "Failure status with empty document on error" contract. There
// are no retries.
func (p *Pipeline) Convert(ctx context.Context, in *input.Descriptor) *Result {
	start := time.Now()
	size, _ := in.Size()

	res := &Result{Input: in, Metrics: Metrics{InputSizeByte: size}}

	b, ok := p.registry.Lookup(in.Format())
	if !ok {
		res.Status = StatusFailure
		res.Errors = []error{docerr.New(docerr.KindUnsupportedFormat, "no backend registered for format %s", in.Format()).WithPath(in.Name())}
		res.Metrics.DurationMS = time.Since(start).Milliseconds()
		return res
	}

	ctx = docctx.WithWarnings(ctx)
	logger := xlog.From(ctx)

	doc, err := b.Convert(ctx, in)
	res.Metrics.DurationMS = time.Since(start).Milliseconds()

	if err != nil {
		logger.Error("conversion failed", "path", in.Name(), "error", err)
		res.Status = StatusFailure
		res.Errors = []error{err}
		return res
	}

	warnings := docctx.Warnings(ctx)
	res.Warnings = warnings
	res.Document = doc
	res.Metrics.NodeCount = doc.NodeCount()

	id := uuid.New().String()
	doc.Metadata.Extra["conversion_id"] = id

	if len(warnings) > 0 {
		res.Status = StatusPartial
		logger.Warn("conversion completed with warnings", "path", in.Name(), "warning_count", len(warnings))
	} else {
		res.Status = StatusSuccess
	}
	return res
}
