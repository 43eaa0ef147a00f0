package middleware

import (
	"github.com/gin-gonic/gin"

	"joywork.app/api/common/logger"
)

// TraceHeader echoes the active trace id so clients can quote it in bug reports.
// It must run after the otelgin middleware.
func TraceHeader(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if name != "" {
			if traceID := logger.TraceID(c.Request.Context()); traceID != "" {
				c.Header(name, traceID)
			}
		}
		c.Next()
	}
}
