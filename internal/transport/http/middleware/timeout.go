package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	resp "familytree-api/internal/transport/http/response"
)

func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			c.AbortWithStatusJSON(504, resp.Error(resp.CodeServerError, "timeout"))
		}
	}
}
