package logger

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey contextKey = "logger"

	// GinKey is where the request scoped logger lives on a gin context.
	GinKey = "logger"
)

// FromContext retrieves the logger from the context, falling back to the process logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return Get()
	}
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return Get()
}

// WithContext adds the logger to the context.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromGin retrieves the logger from the gin context.
func FromGin(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(GinKey); ok {
		if zl, ok := l.(*zap.Logger); ok {
			return zl
		}
	}
	return Get()
}
