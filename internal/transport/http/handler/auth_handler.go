package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gin-user-rbac/internal/feature/user"
	"gin-user-rbac/internal/service"
	httpez "gin-user-rbac/internal/transport/http/ez"
	mdw "gin-user-rbac/internal/transport/http/middleware"
)

type AuthHandler struct {
	auth       *service.AuthService
	users      *service.UserService
	exposeHash bool
}

func NewAuthHandler(auth *service.AuthService, users *service.UserService, exposeHash bool) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, exposeHash: exposeHash}
}

func (h *AuthHandler) Priority() int { return 10 }

func (h *AuthHandler) MountAPI(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[user.LoginDto, service.AccessToken]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Public: true,
		Handler: func(c *gin.Context, in *user.LoginDto) (service.AccessToken, error) {
			ctx := c.Request.Context()
			u, err := h.auth.ValidateUser(ctx, in.Email, in.Password)
			if err != nil {
				return service.AccessToken{}, mapErr(err)
			}
			tok, err := h.auth.Login(ctx, u)
			if err != nil {
				return service.AccessToken{}, mapErr(err)
			}
			return tok, nil
		},
	})

	// 当前登录用户（按 token 里的 id 重新加载）
	httpez.RegisterAction(e, httpez.Action[struct{}, *user.View]{
		Method: http.MethodGet,
		Path:   "/auth/me",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*user.View, error) {
			claims, ok := mdw.ClaimsFrom(c)
			if !ok {
				return nil, httpez.Unauthorized("unauthorized")
			}
			u, err := h.users.FindOne(c.Request.Context(), claims.UserID)
			if err != nil {
				return nil, mapErr(err)
			}
			if u == nil {
				return nil, httpez.NotFound("user not found")
			}
			return user.NewView(u, h.exposeHash), nil
		},
	})
}
