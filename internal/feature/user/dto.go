package user

import (
	"time"

	"gin-user-rbac/internal/domain"
)

type CreateUserDto struct {
	Name     string `json:"name"     binding:"required,max=64"`
	Email    string `json:"email"    binding:"required,email,max=191"`
	Password string `json:"password" binding:"required,max=72"`
	Role     string `json:"role"     binding:"required,oneof=INTERN ENGINEER ADMIN"`
}

func (d CreateUserDto) ToDomain() domain.NewUser {
	return domain.NewUser{Name: d.Name, Email: d.Email, Password: d.Password, Role: domain.Role(d.Role)}
}

// UpdatedUserDto 所有字段可选，出现即校验
type UpdatedUserDto struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=64"`
	Email    *string `json:"email"    binding:"omitempty,email,max=191"`
	Password *string `json:"password" binding:"omitempty,min=1,max=72"`
	Role     *string `json:"role"     binding:"omitempty,oneof=INTERN ENGINEER ADMIN"`
}

func (d UpdatedUserDto) ToPatch() domain.UserPatch {
	p := domain.UserPatch{Name: d.Name, Email: d.Email, Password: d.Password}
	if d.Role != nil {
		r := domain.Role(*d.Role)
		p.Role = &r
	}
	return p
}

type ListQuery struct {
	Role string `form:"role" binding:"omitempty,oneof=INTERN ENGINEER ADMIN"`
}

type LoginDto struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// View 对外输出；Password 仅在 compat.exposePasswordHash 打开时带出
type View struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Password  string      `json:"password,omitempty"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func NewView(u *domain.User, exposeHash bool) *View {
	if u == nil {
		return nil
	}
	v := &View{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if exposeHash {
		v.Password = u.Password
	}
	return v
}

func NewViews(us []domain.User, exposeHash bool) []*View {
	out := make([]*View, 0, len(us))
	for i := range us {
		out = append(out, NewView(&us[i], exposeHash))
	}
	return out
}
