package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"collections-service/internal/pkg/logger"
)

// AttachTraceID puts a fresh trace id on the request context so every log
// line downstream carries it.
func AttachTraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logger.WithTraceID(c.Request.Context(), uuid.NewString())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
