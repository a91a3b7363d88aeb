package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "gin-user-rbac/internal/transport/http/response"
)

// ConcurrencyLimit 限制同时在处理的请求数（保护 DB 和 bcrypt 的 CPU）
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeUnavailable), resp.Error(resp.CodeUnavailable, "server busy"))
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
