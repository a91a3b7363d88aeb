// admin 运维命令：
//
//	admin migrate
//	admin seed-admin -email root@example.com -name Root -password ****
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gin-user-rbac/internal/app"
	"gin-user-rbac/internal/core/config"
	"gin-user-rbac/internal/domain"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <migrate|seed-admin> [flags]\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

var errUsage = errors.New("unknown command")

// run 所有资源在返回前由 defer 释放，main 只负责退出码
func run(cmd string, args []string) error {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()

	switch cmd {
	case "migrate":
		err = store.Migrate(cfg.DB.Driver)
	case "seed-admin":
		err = seedAdmin(ctx, cfg, store, log, args)
	default:
		usage()
		return errUsage
	}
	if err != nil {
		log.Error(cmd+" failed", zap.Error(err))
		return err
	}
	log.Info(cmd + " done")
	return nil
}

// seedAdmin GET /user/:id 只允许 ADMIN，首个管理员只能从这里创建
func seedAdmin(ctx context.Context, cfg *config.Config, store *app.Store, l *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("seed-admin", flag.ContinueOnError)
	email := fs.String("email", "", "admin email")
	name := fs.String("name", "admin", "display name")
	password := fs.String("password", os.Getenv("ADMIN_PASSWORD"), "plain password (default $ADMIN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("-email and -password are required")
	}

	if err := store.Migrate(cfg.DB.Driver); err != nil {
		return err
	}
	svc := app.NewServices(cfg, store.Users, l)
	u, err := svc.Users.Create(ctx, domain.NewUser{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     domain.RoleAdmin,
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		l.Warn("admin already exists", zap.String("email", *email))
		return nil
	}
	if err != nil {
		return err
	}
	l.Info("admin created", zap.String("id", u.ID), zap.String("email", u.Email))
	return nil
}
