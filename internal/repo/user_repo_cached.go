package repo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gin-user-rbac/internal/core/cache"
	"gin-user-rbac/internal/domain"
)

// CachedUserRepo 按 id 缓存用户（鉴权每个请求都会回查），写操作后失效
type CachedUserRepo struct {
	domain.UserRepository
	cache *cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedUserRepo(inner domain.UserRepository, c *cache.Cache, ttl time.Duration, l *zap.Logger) *CachedUserRepo {
	return &CachedUserRepo{UserRepository: inner, cache: c, ttl: ttl, log: l}
}

func userKey(id string) string { return "user:id:" + id }

func (r *CachedUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return cache.GetOrLoadJSON(r.cache, ctx, userKey(id), r.ttl, func(ctx context.Context) (*domain.User, error) {
		return r.UserRepository.FindByID(ctx, id)
	})
}

func (r *CachedUserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.UserRepository.Create(ctx, u); err != nil {
		return err
	}
	// 清掉可能存在的负缓存
	r.invalidate(ctx, u.ID)
	return nil
}

func (r *CachedUserRepo) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	u, err := r.UserRepository.Update(ctx, id, patch)
	r.invalidate(ctx, id)
	return u, err
}

func (r *CachedUserRepo) Delete(ctx context.Context, id string) (*domain.User, error) {
	u, err := r.UserRepository.Delete(ctx, id)
	r.invalidate(ctx, id)
	return u, err
}

func (r *CachedUserRepo) invalidate(ctx context.Context, id string) {
	if err := r.cache.Delete(ctx, userKey(id)); err != nil {
		r.log.Warn("user cache invalidate failed", zap.String("id", id), zap.Error(err))
	}
}
