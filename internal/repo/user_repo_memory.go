package repo

import (
	"context"
	"sync"
	"time"

	"gin-user-rbac/internal/domain"
	"gin-user-rbac/pkg/utils"
)

// MemoryUserRepo 进程内存储（db.driver=memory），本地调试与测试用
type MemoryUserRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.User
	now   func() time.Time
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{byID: map[string]domain.User{}, now: time.Now}
}

func (r *MemoryUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(u.Email, "") {
		return domain.ErrDuplicateEmail
	}
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.byID[u.ID] = *u
	r.order = append(r.order, u.ID)
	return nil
}

func (r *MemoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if u := r.byID[id]; u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepo) List(_ context.Context, role *domain.Role) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.User{}
	for _, id := range r.order {
		u := r.byID[id]
		if role != nil && u.Role != *role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *MemoryUserRepo) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Empty() {
		return &u, nil
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, id) {
		return nil, domain.ErrDuplicateEmail
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	u.UpdatedAt = r.now()
	r.byID[id] = u
	return &u, nil
}

func (r *MemoryUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &u, nil
}

// 调用方持锁
func (r *MemoryUserRepo) emailTaken(email, exceptID string) bool {
	for id, u := range r.byID {
		if u.Email == email && id != exceptID {
			return true
		}
	}
	return false
}
