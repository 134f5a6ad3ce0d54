package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With stores a request-scoped logger carrying the given fields. Fields
// accumulate: a second With builds on the logger already in the context.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, From(ctx).With(fields...))
}

// From returns the request-scoped logger, or the process logger when the
// context carries none.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
