package service

import (
	"context"

	"gin-user-rbac/internal/domain"
	"gin-user-rbac/internal/repo"
)

// spyRepo 记录调用并可注入错误
type spyRepo struct {
	*repo.MemoryUserRepo

	creates    int
	lastPatch  domain.UserPatch
	lastRole   *domain.Role
	findErr    error
	findByMail *domain.User // 非 nil 时 FindByEmail 直接返回它
}

func newSpyRepo() *spyRepo { return &spyRepo{MemoryUserRepo: repo.NewMemoryUserRepo()} }

func (r *spyRepo) Create(ctx context.Context, u *domain.User) error {
	r.creates++
	return r.MemoryUserRepo.Create(ctx, u)
}

func (r *spyRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.findByMail != nil {
		return r.findByMail, nil
	}
	return r.MemoryUserRepo.FindByEmail(ctx, email)
}

func (r *spyRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.MemoryUserRepo.FindByID(ctx, id)
}

func (r *spyRepo) List(ctx context.Context, role *domain.Role) ([]domain.User, error) {
	r.lastRole = role
	return r.MemoryUserRepo.List(ctx, role)
}

func (r *spyRepo) Update(ctx context.Context, id string, p domain.UserPatch) (*domain.User, error) {
	r.lastPatch = p
	return r.MemoryUserRepo.Update(ctx, id, p)
}

type fakeIssuer struct {
	email, id string
	err       error
}

func (f *fakeIssuer) Issue(email, id string) (string, error) {
	f.email, f.id = email, id
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + id, nil
}
