package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"gin-user-rbac/internal/domain"
	"gin-user-rbac/pkg/utils"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// Create 空 ID 时由存储层生成
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepo) first(ctx context.Context, cond string, arg string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, cond, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List role 为 nil 时返回全部，按写入顺序
func (r *UserRepo) List(ctx context.Context, role *domain.Role) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if role != nil {
		q = q.Where("role = ?", string(*role))
	}
	users := []domain.User{}
	if err := q.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if patch.Empty() {
			return nil
		}
		if err := tx.Model(&u).Updates(patch.Columns()).Error; err != nil {
			if isDupKey(err) {
				return domain.ErrDuplicateEmail
			}
			return err
		}
		return tx.First(&u, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete 物理删除，返回删除前的快照
func (r *UserRepo) Delete(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		res := tx.Delete(&domain.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 驱动错误未翻译时按文本兜底
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
