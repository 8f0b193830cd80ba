package middleware

import (
	"time"

	"github.com/civicdesk/backend/internal/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs each HTTP request with latency and caller context.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := map[string]interface{}{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}
		if caller, ok := CallerFromContext(c); ok {
			fields["user_id"] = caller.ID
		}

		logger.Info("request handled", fields)
	}
}
