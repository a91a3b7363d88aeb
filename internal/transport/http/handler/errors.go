package handler

import (
	"errors"

	"gin-user-rbac/internal/domain"
	httpez "gin-user-rbac/internal/transport/http/ez"
)

// mapErr 领域错误 → AErr；未识别的一律 500，原因只进日志
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrDuplicateEmail):
		return httpez.BadRequest("email already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return httpez.BadRequest("invalid credentials")
	case errors.Is(err, domain.ErrNotFound):
		return httpez.NotFound("user not found")
	case errors.Is(err, domain.ErrPasswordTooLong):
		return httpez.Invalid("password", "must be at most 72 bytes")
	case errors.Is(err, domain.ErrInvalidRole):
		return httpez.BadRequest(domain.ErrInvalidRole.Error())
	default:
		return httpez.Internal("", err)
	}
}
