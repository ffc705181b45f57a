package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinLogger replaces gin's default console logger with structured access
// logs through the application zap logger.
func GinLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path

		ctx.Next()

		if Logger == nil {
			return
		}
		Logger.Info("request",
			zap.Int("status", ctx.Writer.Status()),
			zap.String("method", ctx.Request.Method),
			zap.String("path", path),
			zap.String("ip", ctx.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", ctx.Writer.Header().Get("X-Request-ID")),
		)
	}
}

// GinRecovery converts a handler panic into the generic plain-text 500,
// logging the panic value server-side only.
func GinRecovery() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if Sugar != nil {
					Sugar.Errorw("panic recovered", "path", ctx.Request.URL.Path, "panic", r)
				}
				ctx.String(http.StatusInternalServerError, "Server error")
				ctx.Abort()
			}
		}()
		ctx.Next()
	}
}
