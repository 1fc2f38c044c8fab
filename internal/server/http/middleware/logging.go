package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs information about incoming requests using slog.
// Server failures are logged at error level together with the errors
// attached to the context by handlers.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", latency),
		}
		if status >= http.StatusInternalServerError {
			if len(c.Errors) > 0 {
				attrs = append(attrs, slog.String("error", c.Errors.String()))
			}
			logger.Error("http request failed", attrs...)
			return
		}
		logger.Info("http request", attrs...)
	}
}
