package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"gin-user-rbac/internal/core/auth"
	"gin-user-rbac/internal/domain"
)

const (
	KeyClaims = "claims"
	KeyUser   = "currentUser"
)

// BearerToken 解析 "Bearer <token>"；格式不对返回 false，不 panic
func BearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil, false
	}
	cl, ok := v.(*auth.Claims)
	return cl, ok && cl != nil
}

// CurrentUser 由 RequireRoles 在声明了角色的路由上写入（最新从存储加载）
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(KeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok && u != nil
}
