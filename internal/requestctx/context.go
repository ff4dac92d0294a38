package requestctx

import (
	"context"

	"github.com/nikolayk812/orderflow/internal/domain"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerContextKey    contextKey = "github.com/nikolayk812/orderflow/internal/requestctx/logger"
	requesterContextKey contextKey = "github.com/nikolayk812/orderflow/internal/requestctx/requester"
)

var noopLogger = zap.NewNop()

// WithLogger stores the logger in context for downstream consumers.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = noopLogger
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// Logger retrieves the zap logger from context or returns a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return noopLogger
	}
	if logger, ok := ctx.Value(loggerContextKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return noopLogger
}

// WithRequester stores the authenticated caller on the context.
func WithRequester(ctx context.Context, requester domain.Requester) context.Context {
	return context.WithValue(ctx, requesterContextKey, requester)
}

// Requester returns the authenticated caller, if any.
func Requester(ctx context.Context) (domain.Requester, bool) {
	if ctx == nil {
		return domain.Requester{}, false
	}
	requester, ok := ctx.Value(requesterContextKey).(domain.Requester)
	return requester, ok
}
