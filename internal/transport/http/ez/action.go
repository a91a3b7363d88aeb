package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gin-user-rbac/internal/domain"
	"gin-user-rbac/internal/transport/http/policy"
	resp "gin-user-rbac/internal/transport/http/response"
)

// EZ 在分组上注册 Action，同时把访问要求写进路由表
type EZ struct {
	g     *gin.RouterGroup
	table *policy.Table
}

func New(g *gin.RouterGroup, t *policy.Table) EZ { return EZ{g: g, table: t} }

type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string        // GET / POST / PATCH / DELETE ...
	Path    string        // 例："/auth/login"、"/user/:id"
	Binder  Binder        // 绑定方式
	Public  bool          // 公开接口，不做任何鉴权
	Roles   []domain.Role // 限定角色；空表示只要求登录
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	method := strings.ToUpper(a.Method)
	e.table.Add(policy.Rule{
		Method: method,
		Path:   joinPath(e.g.BasePath(), a.Path),
		Public: a.Public,
		Roles:  a.Roles,
	})

	e.g.Handle(method, a.Path, func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			Abort(c, BindError(bindErr))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	})
}

// Abort 统一错误映射：AErr 按 Code 输出，其余 500 且不暴露原因
func Abort(c *gin.Context, err error) {
	var ae *AErr
	if !errors.As(err, &ae) {
		ae = &AErr{Code: resp.CodeServerError, Err: err}
	}
	if ae.Err != nil {
		_ = c.Error(ae.Err)
	}
	msg := ae.Msg
	if ae.Code >= resp.CodeServerError && msg == "" {
		msg = "internal error"
	}
	var data interface{}
	if len(ae.Fields) > 0 {
		data = ae.Fields
	}
	c.AbortWithStatusJSON(resp.HTTPStatus(ae.Code), resp.Fail(ae.Code, msg, data))
}

func joinPath(base, rel string) string {
	if rel == "" {
		return base
	}
	if base == "" || base == "/" {
		return rel
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(rel, "/")
}
