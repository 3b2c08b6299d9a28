package utils

import (
	"context"
	"log/slog"

	slogctx "github.com/veqryn/slog-context"
)

func ContextLogger(ctx context.Context, args ...any) *slog.Logger {
	return slogctx.FromCtx(ctx).With(args...)
}
