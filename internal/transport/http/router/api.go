package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gin-user-rbac/internal/core/config"
	"gin-user-rbac/internal/core/server"
	"gin-user-rbac/internal/service"
	httpez "gin-user-rbac/internal/transport/http/ez"
	"gin-user-rbac/internal/transport/http/handler"
	mdw "gin-user-rbac/internal/transport/http/middleware"
	"gin-user-rbac/internal/transport/http/policy"
)

type Deps struct {
	Users  *service.UserService
	Auth   *service.AuthService
	Tokens mdw.TokenParser
	Limits config.Limits

	ExposePasswordHash bool
}

// NewAPIEngine 中间件顺序固定：登录校验必须先于角色校验
func NewAPIEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := server.NewRouter(l)
	table := policy.NewTable()

	if d.Limits.MaxConcurrent > 0 {
		r.Use(mdw.ConcurrencyLimit(d.Limits.MaxConcurrent))
	}
	if d.Limits.MaxBodyBytes > 0 {
		r.Use(mdw.MaxBodyBytes(d.Limits.MaxBodyBytes))
	}
	if d.Limits.TimeoutSec > 0 {
		r.Use(mdw.Timeout(time.Duration(d.Limits.TimeoutSec) * time.Second))
	}
	r.Use(
		mdw.Metrics(),
		mdw.AccessLog(l),
		mdw.Authenticate(table, d.Tokens),
		mdw.RequireRoles(table, d.Tokens, d.Users, l),
	)

	// 不在路由表中，两道校验都直接放行
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(mdw.MetricsHandler()))

	var reg Registry
	reg.Register(
		handler.NewUserHandler(d.Users, d.ExposePasswordHash),
		handler.NewAuthHandler(d.Auth, d.Users, d.ExposePasswordHash),
	)
	reg.MountAll(httpez.New(&r.RouterGroup, table))

	for _, rule := range table.Rules() {
		l.Debug("route", zap.String("method", rule.Method), zap.String("path", rule.Path),
			zap.Bool("public", rule.Public), zap.Any("roles", rule.Roles))
	}
	return r
}
