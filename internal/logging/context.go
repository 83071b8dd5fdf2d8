package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type ctxKey struct{}

// WithLogger attaches logger to ctx. A nil ctx is treated as Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger attached to ctx, or Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, _ := ctx.Value(ctxKey{}).(*log.Logger); logger != nil {
			return logger
		}
	}
	return Default()
}

// WithFields attaches a child of ctx's logger that adds keyvals to every
// entry, so per-input log lines need not repeat them.
func WithFields(ctx context.Context, keyvals ...any) context.Context {
	if len(keyvals) == 0 {
		return ctx
	}
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}
