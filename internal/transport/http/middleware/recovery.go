package middleware

import (
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "gin-user-rbac/internal/transport/http/response"
)

// Recovery panic 记录堆栈并返回统一 500
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return ginzap.CustomRecoveryWithZap(l, true, func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeServerError), resp.Error(resp.CodeServerError, "internal error"))
	})
}
