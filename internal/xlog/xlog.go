// Package xlog carries a *slog.Logger through a context.Context, the same
// pattern the conversion and chunking pipelines use end to end so that every
// stage can log without threading a logger parameter through every call.
package xlog

import (
	"context"
	"io"
	"log/slog"
)

type ctxKey struct{}

var key ctxKey

// With returns a child context carrying l. A nil logger is a no-op.
func With(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		return ctx
	}
	return context.WithValue(ctx, key, l)
}

// From retrieves the logger stored in ctx, falling back to slog.Default().
func From(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if v := ctx.Value(key); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

// WithAttrs returns a context whose logger has the given attributes attached.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	any := make([]any, len(attrs))
	for i, a := range attrs {
		any[i] = a
	}
	return With(ctx, From(ctx).With(any...))
}

// WithGroup returns a context whose logger groups subsequent attributes under name.
func WithGroup(ctx context.Context, name string) context.Context {
	return With(ctx, From(ctx).WithGroup(name))
}

// Discard returns a logger that drops everything, useful for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
