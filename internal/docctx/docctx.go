// Package docctx carries lightweight per-conversion metadata (the input's
// origin and detected format) through a context.Context, mirroring the way
// the teacher package threaded per-file identity through its parse pipeline.
package docctx

import (
	"context"
	"sync"
)

type originKeyType struct{}
type warnKeyType struct{}

var originKey originKeyType
var warnKey warnKeyType

// Origin identifies the document currently being converted or chunked.
type Origin struct {
	// Path is the logical source path or synthetic name of the document.
	Path string
	// Format is the detected or caller-supplied format tag, e.g. "Markdown".
	Format string
}

// WithOrigin returns a child context carrying o.
func WithOrigin(ctx context.Context, o Origin) context.Context {
	return context.WithValue(ctx, originKey, o)
}

// OriginFrom returns the origin stored in ctx, if any.
func OriginFrom(ctx context.Context) (Origin, bool) {
	if v := ctx.Value(originKey); v != nil {
		if o, ok := v.(Origin); ok {
			return o, true
		}
	}
	return Origin{}, false
}

// MustOrigin returns the origin stored in ctx, or a zero value.
func MustOrigin(ctx context.Context) Origin {
	o, _ := OriginFrom(ctx)
	return o
}

// warnSink accumulates warnings emitted by a backend during one Convert
// call. It is a pointer stored in the context value so multiple backend
// helper functions sharing ctx can all append to the same slice -- mirrors
// how spec.md's Partial status needs warnings collected across several
// independent tolerance decisions (unclosed tags, padded rows, ...).
type warnSink struct {
	mu    sync.Mutex
	items []string
}

// WithWarnings returns a child context with a fresh warning sink attached.
func WithWarnings(ctx context.Context) context.Context {
	return context.WithValue(ctx, warnKey, &warnSink{})
}

// Warn appends msg to the sink attached to ctx, if any. It is a silent no-op
// when ctx carries no sink, so backends can call it unconditionally.
func Warn(ctx context.Context, msg string) {
	if v, ok := ctx.Value(warnKey).(*warnSink); ok {
		v.mu.Lock()
		v.items = append(v.items, msg)
		v.mu.Unlock()
	}
}

// Warnings returns every warning recorded on ctx's sink, in recording order.
func Warnings(ctx context.Context) []string {
	if v, ok := ctx.Value(warnKey).(*warnSink); ok {
		v.mu.Lock()
		defer v.mu.Unlock()
		out := make([]string, len(v.items))
		copy(out, v.items)
		return out
	}
	return nil
}
