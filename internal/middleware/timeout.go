package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// WithTimeout bounds the request context so slow storage calls fail
// with context.DeadlineExceeded instead of hanging the client.
// Controllers surface that as 504 so the UI can offer a retry; the
// in-flight statement may still complete server-side.
func WithTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
