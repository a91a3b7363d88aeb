package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"gin-user-rbac/internal/core/auth"
	"gin-user-rbac/internal/core/cache"
	"gin-user-rbac/internal/core/config"
	"gin-user-rbac/internal/core/database"
	"gin-user-rbac/internal/core/logger"
	"gin-user-rbac/internal/domain"
	"gin-user-rbac/internal/repo"
	"gin-user-rbac/internal/service"
)

// NewLogger 按配置构建 zap；标准库 log 一并转到 zap
func NewLogger(cfg *config.Config) (*zap.Logger, func()) {
	l, cleanup := logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Enable:     cfg.Log.File.Enable,
		Filename:   cfg.Log.File.Filename,
		MaxSizeMB:  cfg.Log.File.MaxSizeMB,
		MaxBackups: cfg.Log.File.MaxBackups,
		MaxAgeDays: cfg.Log.File.MaxAgeDays,
		Compress:   cfg.Log.File.Compress,
	})
	undo := logger.RedirectStdLog(l, zapcore.InfoLevel)
	return l, func() {
		undo()
		cleanup()
	}
}

// Store 用户存储及其底层资源
type Store struct {
	Users domain.UserRepository
	DB    *gorm.DB // driver=memory 时为 nil

	closers []func() error
}

func (s *Store) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// OpenStore 打开数据库；配置了 redis 时在外层套按 id 的缓存
func OpenStore(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Store, error) {
	s := &Store{}
	if cfg.DB.Driver == "memory" {
		l.Warn("using in-memory user store, data is lost on restart")
		s.Users = repo.NewMemoryUserRepo()
	} else {
		db, err := database.NewGorm(database.Opts{
			Driver:             cfg.DB.Driver,
			DSN:                cfg.DB.DSN,
			Username:           cfg.DB.Username,
			Password:           cfg.DB.Password,
			MaxOpenConns:       cfg.DB.MaxOpenConns,
			MaxIdleConns:       cfg.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.DB.LogLevel,
		}, l)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		s.DB = db
		s.closers = append(s.closers, sqlDB.Close)
		s.Users = repo.NewUserRepo(db)
		l.Info("database connected", zap.String("driver", cfg.DB.Driver))
	}

	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := c.Ping(pctx); err != nil {
			// 缓存不可用时读写直接回源
			l.Warn("redis unreachable, user cache degraded", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		s.closers = append(s.closers, c.Close)
		ttl := time.Duration(cfg.Redis.UserTTLSec) * time.Second
		s.Users = repo.NewCachedUserRepo(s.Users, c, ttl, l.Named("cache"))
	}
	return s, nil
}

// Migrate memory 驱动无需迁移
func (s *Store) Migrate(driver string) error {
	if s.DB == nil {
		return nil
	}
	return database.Migrate(s.DB, driver)
}

func NewJWTer(cfg config.JWT) *auth.JWTer {
	return &auth.JWTer{
		Secret: []byte(cfg.Secret),
		Issuer: cfg.Issuer,
		TTL:    time.Duration(cfg.AccessTokenTTLMin) * time.Minute,
		Leeway: time.Duration(cfg.LeewaySec) * time.Second,
	}
}

type Services struct {
	Users  *service.UserService
	Auth   *service.AuthService
	Tokens *auth.JWTer
}

func NewServices(cfg *config.Config, users domain.UserRepository, l *zap.Logger) Services {
	jwter := NewJWTer(cfg.JWT)
	us := service.NewUserService(users, l.Named("user"))
	us.RehashOnUpdate = cfg.Auth.RehashOnUpdate
	return Services{
		Users:  us,
		Auth:   service.NewAuthService(us, jwter, l.Named("auth")),
		Tokens: jwter,
	}
}
