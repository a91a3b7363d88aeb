package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gin-user-rbac/internal/app"
	"gin-user-rbac/internal/core/config"
	"gin-user-rbac/internal/core/server"
	"gin-user-rbac/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()

	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 存储（失败直接 Fatal）
	store, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	if cfg.DB.AutoMigrate {
		if err := store.Migrate(cfg.DB.Driver); err != nil {
			log.Fatal("migrate failed", zap.Error(err))
		}
		log.Info("migrate done")
	}

	svc := app.NewServices(cfg, store.Users, log)
	r := router.NewAPIEngine(log, router.Deps{
		Users:              svc.Users,
		Auth:               svc.Auth,
		Tokens:             svc.Tokens,
		Limits:             cfg.Limits,
		ExposePasswordHash: cfg.Compat.ExposePasswordHash,
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("user api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("metrics", baseURL+"/metrics"),
	)

	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Fatal("user api FAILED", zap.Error(err))
	}
}
