package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fatflowers/hms-payment/pkg/logctx"
)

const (
	HeaderCorrelationID = "X-Correlation-Id"
	HeaderRequestID     = "X-Request-ID"

	maxCorrelationIDLen = 128
)

// CorrelationMiddleware adds a correlation ID to the request context.
// It reads X-Correlation-Id (falling back to X-Request-ID) if provided by the client;
// otherwise generates a UUID. The ID is echoed in the X-Correlation-Id response header.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderCorrelationID)
		if id == "" {
			id = c.GetHeader(HeaderRequestID)
		}
		if id == "" || len(id) > maxCorrelationIDLen {
			id = uuid.NewString()
		}

		c.Set(logctx.GinCorrelationIDKey, id)
		c.Request = c.Request.WithContext(logctx.WithCorrelationID(c.Request.Context(), id))
		c.Writer.Header().Set(HeaderCorrelationID, id)
		c.Next()
	}
}

// CorrelationID returns the id set by CorrelationMiddleware, or "".
func CorrelationID(c *gin.Context) string {
	return c.GetString(logctx.GinCorrelationIDKey)
}
