package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gin-user-rbac/internal/domain"
	"gin-user-rbac/internal/feature/user"
	"gin-user-rbac/internal/service"
	httpez "gin-user-rbac/internal/transport/http/ez"
)

type UserHandler struct {
	svc        *service.UserService
	exposeHash bool
}

func NewUserHandler(svc *service.UserService, exposeHash bool) *UserHandler {
	return &UserHandler{svc: svc, exposeHash: exposeHash}
}

func (h *UserHandler) Priority() int { return 20 }

// MountAPI /user 资源
func (h *UserHandler) MountAPI(e httpez.EZ) {
	// 列表，可按角色过滤
	httpez.RegisterAction(e, httpez.Action[user.ListQuery, []*user.View]{
		Method: http.MethodGet,
		Path:   "/user",
		Binder: httpez.BindQuery,
		Public: true,
		Handler: func(c *gin.Context, in *user.ListQuery) ([]*user.View, error) {
			role, err := domain.ParseRole(in.Role)
			if err != nil {
				return nil, mapErr(err)
			}
			us, err := h.svc.FindAll(c.Request.Context(), role)
			if err != nil {
				return nil, mapErr(err)
			}
			return user.NewViews(us, h.exposeHash), nil
		},
	})

	// 查不到返回 data: null
	httpez.RegisterAction(e, httpez.Action[struct{}, *user.View]{
		Method: http.MethodGet,
		Path:   "/user/:id",
		Binder: httpez.BindNone,
		Roles:  []domain.Role{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (*user.View, error) {
			u, err := h.svc.FindOne(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, mapErr(err)
			}
			return user.NewView(u, h.exposeHash), nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[user.CreateUserDto, *user.View]{
		Method: http.MethodPost,
		Path:   "/user",
		Binder: httpez.BindJSON,
		Public: true,
		Handler: func(c *gin.Context, in *user.CreateUserDto) (*user.View, error) {
			u, err := h.svc.Create(c.Request.Context(), in.ToDomain())
			if err != nil {
				return nil, mapErr(err)
			}
			return user.NewView(u, h.exposeHash), nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[user.UpdatedUserDto, *user.View]{
		Method: http.MethodPatch,
		Path:   "/user/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *user.UpdatedUserDto) (*user.View, error) {
			u, err := h.svc.Update(c.Request.Context(), c.Param("id"), in.ToPatch())
			if err != nil {
				return nil, mapErr(err)
			}
			return user.NewView(u, h.exposeHash), nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, *user.View]{
		Method: http.MethodDelete,
		Path:   "/user/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*user.View, error) {
			u, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, mapErr(err)
			}
			return user.NewView(u, h.exposeHash), nil
		},
	})
}
