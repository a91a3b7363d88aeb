package domain

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidRole        = errors.New("valid role required")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)
