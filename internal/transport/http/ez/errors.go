package ez

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	resp "gin-user-rbac/internal/transport/http/response"
)

// AErr 统一错误对象（配合 resp.Fail）
type AErr struct {
	Code   int
	Msg    string
	Err    error
	Fields map[string]string // 字段级校验信息
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Invalid 单字段校验失败，输出格式与 BindError 一致
func Invalid(field, msg string) error {
	return &AErr{Code: resp.CodeBadRequest, Msg: "validation failed", Fields: map[string]string{field: msg}}
}

// BindError 把 gin 绑定错误转成 400；校验错误带字段信息
func BindError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[lowerFirst(fe.Field())] = fieldMessage(fe)
		}
		return &AErr{Code: resp.CodeBadRequest, Msg: "validation failed", Fields: fields}
	}
	return &AErr{Code: resp.CodeBadRequest, Msg: "invalid request body", Err: err}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
