package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gin-user-rbac/internal/domain"
	"gin-user-rbac/internal/transport/http/policy"
	resp "gin-user-rbac/internal/transport/http/response"
)

type UserFinder interface {
	FindOne(ctx context.Context, id string) (*domain.User, error)
}

const msgNoPermission = "You do not have permission to access this resource"

// RequireRoles 角色校验，必须注册在 Authenticate 之后。
// 每次都回查用户，token 签发后角色变更/用户删除会立即生效。
func RequireRoles(table *policy.Table, tokens TokenParser, users UserFinder, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rule, ok := table.Lookup(c.Request.Method, c.FullPath())
		if !ok || rule.Public || len(rule.Roles) == 0 {
			c.Next()
			return
		}

		tok, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			deny(c, "roles", "missing_token", resp.CodeForbidden, "invalid token")
			return
		}
		claims, err := tokens.Parse(tok)
		if err != nil {
			deny(c, "roles", "invalid_token", resp.CodeForbidden, "invalid token")
			return
		}

		u, err := users.FindOne(c.Request.Context(), claims.UserID)
		if err != nil {
			l.Error("load current user failed", zap.String("id", claims.UserID), zap.Error(err))
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeServerError), resp.Error(resp.CodeServerError, "internal error"))
			return
		}
		switch {
		case u == nil:
			deny(c, "roles", "unknown_user", resp.CodeForbidden, msgNoPermission)
			return
		case !rule.Allows(u.Role):
			deny(c, "roles", "role_mismatch", resp.CodeForbidden, msgNoPermission)
			return
		}

		c.Set(KeyClaims, claims)
		c.Set(KeyUser, u)
		c.Next()
	}
}
