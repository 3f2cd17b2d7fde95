// Package backend defines the Backend abstraction every format parser
// implements (spec.md §4.2) and a Registry that dispatches an
// input.Descriptor to the backend registered for its format.
package backend

import (
	"context"

	"github.com/kaidoc/docling/pkg/document"
	"github.com/kaidoc/docling/pkg/input"
)

// Backend converts one input format into the unified Document tree. Every
// backend is declarative: Convert produces a full Document in one call, even
// when (as in the PDF backend) the implementation runs several internal
// stages to get there.
type Backend interface {
	// SupportedFormats returns the non-empty, compile-time-constant list of
	// formats this backend handles.
	SupportedFormats() []input.Format

	// IsValid performs a cheap structural check. It never panics and never
	// returns an error; a backend that cannot tell returns true and lets
	// Convert fail with a categorized error instead.
	IsValid(ctx context.Context, in *input.Descriptor) bool

	// Convert parses in and returns the resulting Document, or a
	// *docerr.Error describing why it could not.
	Convert(ctx context.Context, in *input.Descriptor) (*document.Document, error)
}

// Registry dispatches an input.Format to its registered Backend.
type Registry struct {
	backends map[input.Format]Backend
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{backends: map[input.Format]Backend{}}
}

// Register adds b under every format it reports via SupportedFormats,
// overwriting any backend previously registered for the same format.
func (r *Registry) Register(b Backend) {
	for _, f := range b.SupportedFormats() {
		r.backends[f] = b
	}
}

// Lookup returns the backend registered for f, and whether one was found.
func (r *Registry) Lookup(f input.Format) (Backend, bool) {
	b, ok := r.backends[f]
	return b, ok
}

// Formats returns every format with a registered backend.
func (r *Registry) Formats() []input.Format {
	out := make([]input.Format, 0, len(r.backends))
	for f := range r.backends {
		out = append(out, f)
	}
	return out
}
