// Package tracelog gives the layout pipeline a place to log stage
// transitions without forcing every caller to configure a logger: a
// context.Context carrying a cdr.dev/slog logger gets structured
// debug lines; a bare context is silently a no-op, exactly as
// d2layouts/d2sequence2.Layout treats its ctx argument.
package tracelog

import (
	"context"

	"cdr.dev/slog"
)

type loggerKey struct{}

// With returns a context that logs pipeline stage traces to l.
func With(ctx context.Context, l slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func from(ctx context.Context) (slog.Logger, bool) {
	l, ok := ctx.Value(loggerKey{}).(slog.Logger)
	return l, ok
}

// Stage logs the start of a pipeline stage, plus any extra fields the
// caller passes. It is a no-op if ctx carries no logger.
func Stage(ctx context.Context, name string, fields ...slog.Field) {
	l, ok := from(ctx)
	if !ok {
		return
	}
	l.Debug(ctx, "layout stage", append([]slog.Field{slog.F("stage", name)}, fields...)...)
}
