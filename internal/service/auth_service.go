package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gin-user-rbac/internal/domain"
	"gin-user-rbac/pkg/utils"
)

type TokenIssuer interface {
	Issue(email, id string) (string, error)
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
}

type AuthService struct {
	users  *UserService
	tokens TokenIssuer
	log    *zap.Logger
}

func NewAuthService(users *UserService, tokens TokenIssuer, l *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: l}
}

// ValidateUser 用户不存在和密码错误对外都是 ErrInvalidCredentials，具体原因只进日志
func (s *AuthService) ValidateUser(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.FindOneByEmail(ctx, email)
	if err != nil {
		loginTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if u == nil {
		loginTotal.WithLabelValues("unknown_user").Inc()
		s.log.Info("login rejected", zap.String("email", email), zap.String("reason", "user not found"))
		return nil, fmt.Errorf("%w: user not found", domain.ErrInvalidCredentials)
	}
	if !utils.CheckPassword(password, u.Password) {
		loginTotal.WithLabelValues("bad_password").Inc()
		s.log.Info("login rejected", zap.String("email", email), zap.String("reason", "password does not match"))
		return nil, fmt.Errorf("%w: password does not match", domain.ErrInvalidCredentials)
	}
	return u, nil
}

// Login 只签发，不校验凭证；必须在 ValidateUser 成功之后调用
func (s *AuthService) Login(_ context.Context, u *domain.User) (AccessToken, error) {
	tok, err := s.tokens.Issue(u.Email, u.ID)
	if err != nil {
		loginTotal.WithLabelValues("error").Inc()
		return AccessToken{}, fmt.Errorf("issue token: %w", err)
	}
	loginTotal.WithLabelValues("ok").Inc()
	return AccessToken{AccessToken: tok}, nil
}
