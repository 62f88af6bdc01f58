package middleware

import (
	"context"

	"go.uber.org/zap"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyIsHTMX ctxKey = "is_htmx"
	ctxKeyLogger ctxKey = "logger"
)

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithLogger stores the request-scoped logger in context.
func WithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, log)
}

// Logger retrieves the request-scoped logger, defaulting to a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if v, ok := ctx.Value(ctxKeyLogger).(*zap.Logger); ok && v != nil {
		return v
	}
	return zap.NewNop()
}
