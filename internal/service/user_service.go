package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gin-user-rbac/internal/domain"
	"gin-user-rbac/pkg/utils"
)

type UserService struct {
	repo domain.UserRepository
	log  *zap.Logger

	// RehashOnUpdate=false 时 patch 中的密码原样写入（旧行为）
	RehashOnUpdate bool
}

func NewUserService(repo domain.UserRepository, l *zap.Logger) *UserService {
	return &UserService{repo: repo, log: l, RehashOnUpdate: true}
}

// Create 先查重再写入；并发下的重复由存储层唯一索引兜底
func (s *UserService) Create(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	if !in.Role.IsValid() {
		return nil, domain.ErrInvalidRole
	}
	if !utils.PasswordFits(in.Password) {
		return nil, domain.ErrPasswordTooLong
	}
	existing, err := s.FindOneByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     in.Role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user created", zap.String("id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

func (s *UserService) FindAll(ctx context.Context, role *domain.Role) ([]domain.User, error) {
	users, err := s.repo.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FindOne 不存在返回 nil, nil
func (s *UserService) FindOne(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return u, nil
}

func (s *UserService) FindOneByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// Update id 不存在时由存储层返回 domain.ErrNotFound
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if patch.Role != nil && !patch.Role.IsValid() {
		return nil, domain.ErrInvalidRole
	}
	if patch.Password != nil && !utils.PasswordFits(*patch.Password) {
		return nil, domain.ErrPasswordTooLong
	}
	if patch.Password != nil && s.RehashOnUpdate {
		hash, err := utils.HashPassword(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.Password = &hash
	}
	u, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete user %s: %w", id, err)
	}
	s.log.Info("user deleted", zap.String("id", id))
	return u, nil
}
