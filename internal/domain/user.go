package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleIntern   Role = "INTERN"
	RoleEngineer Role = "ENGINEER"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleIntern, RoleEngineer, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole 空串返回 nil（不过滤）
func ParseRole(s string) (*Role, error) {
	if s == "" {
		return nil, nil
	}
	r := Role(s)
	if !r.IsValid() {
		return nil, ErrInvalidRole
	}
	return &r, nil
}

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"password"` // bcrypt hash
	Role      Role      `gorm:"size:16;not null" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// NewUser 创建入参（明文密码，由 service 负责 hash）
type NewUser struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// UserPatch 部分更新；nil 字段不修改
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	Role     *Role
}

func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil && p.Role == nil
}

// Columns 转成 gorm Updates 用的列映射
func (p UserPatch) Columns() map[string]any {
	m := map[string]any{}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.Email != nil {
		m["email"] = *p.Email
	}
	if p.Password != nil {
		m["password"] = *p.Password
	}
	if p.Role != nil {
		m["role"] = string(*p.Role)
	}
	return m
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, role *Role) ([]User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*User, error)
	Delete(ctx context.Context, id string) (*User, error)
}
