package response

import "net/http"

// 业务码直接基于 HTTP 语义；0 表示成功
const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
	CodeUnavailable  = 503
	CodeTimeout      = 504
)

var CodeMsgMap = map[int]string{
	CodeOK:           "OK",
	CodeBadRequest:   "Bad Request",
	CodeUnauthorized: "Unauthorized",
	CodeForbidden:    "Forbidden",
	CodeNotFound:     "Not Found",
	CodeServerError:  "Internal Server Error",
	CodeUnavailable:  "Service Unavailable",
	CodeTimeout:      "Gateway Timeout",
}

// HTTPStatus 业务码 -> HTTP 状态码
func HTTPStatus(code int) int {
	if code == CodeOK {
		return http.StatusOK
	}
	if code >= 400 && code <= 599 {
		return code
	}
	return http.StatusInternalServerError
}
