package ez

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gin-user-rbac/internal/domain"
	"gin-user-rbac/internal/transport/http/policy"
)

type echoIn struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"  binding:"required,oneof=INTERN ENGINEER ADMIN"`
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*gin.Engine, *policy.Table) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tb := policy.NewTable()
	api := New(r.Group("/api"), tb)

	RegisterAction(api, Action[echoIn, echoIn]{
		Method: http.MethodPost,
		Path:   "/echo",
		Binder: BindJSON,
		Public: true,
		Handler: func(_ *gin.Context, in *echoIn) (echoIn, error) {
			return *in, nil
		},
	})
	RegisterAction(api, Action[struct{}, gin.H]{
		Method: "patch",
		Path:   "/things/:id",
		Binder: BindNone,
		Roles:  []domain.Role{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			switch c.Param("id") {
			case "missing":
				return nil, NotFound("thing not found")
			case "boom":
				return nil, errors.New("db exploded")
			}
			return gin.H{"id": c.Param("id")}, nil
		},
	})
	return r, tb
}

func do(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestRegisterAction_RecordsPolicy(t *testing.T) {
	_, tb := setup(t)

	rule, ok := tb.Lookup(http.MethodPost, "/api/echo")
	require.True(t, ok)
	assert.True(t, rule.Public)

	rule, ok = tb.Lookup(http.MethodPatch, "/api/things/:id")
	require.True(t, ok)
	assert.False(t, rule.Public)
	assert.Equal(t, []domain.Role{domain.RoleAdmin}, rule.Roles)
}

func TestRegisterAction_OK(t *testing.T) {
	r, _ := setup(t)
	w, env := do(r, http.MethodPost, "/api/echo", `{"email":"j@x.com","role":"ADMIN"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
	assert.JSONEq(t, `{"email":"j@x.com","role":"ADMIN"}`, string(env.Data))
}

func TestRegisterAction_ValidationErrors(t *testing.T) {
	r, _ := setup(t)

	w, env := do(r, http.MethodPost, "/api/echo", `{"email":"nope","role":"OWNER"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation failed", env.Msg)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.Equal(t, "must be a valid email", fields["email"])
	assert.Equal(t, "must be one of INTERN, ENGINEER, ADMIN", fields["role"])

	w, env = do(r, http.MethodPost, "/api/echo", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", env.Msg)
}

func TestRegisterAction_ErrorMapping(t *testing.T) {
	r, _ := setup(t)

	w, env := do(r, http.MethodPatch, "/api/things/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "thing not found", env.Msg)

	w, env = do(r, http.MethodPatch, "/api/things/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", env.Msg)
	assert.NotContains(t, w.Body.String(), "db exploded")

	w, _ = do(r, http.MethodPatch, "/api/things/42", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/user", joinPath("/", "/user"))
	assert.Equal(t, "/api/user", joinPath("/api", "/user"))
	assert.Equal(t, "/api/user", joinPath("/api/", "user"))
	assert.Equal(t, "/api", joinPath("/api", ""))
}
