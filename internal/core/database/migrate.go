package database

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"gin-user-rbac/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate postgres 走 goose 版本化迁移；mysql 走 gorm AutoMigrate
func Migrate(db *gorm.DB, driver string) error {
	switch driver {
	case "postgres":
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		goose.SetBaseFS(migrationsFS)
		if err := goose.SetDialect("postgres"); err != nil {
			return err
		}
		if err := goose.Up(sqlDB, "migrations"); err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
		return nil
	case "mysql":
		return db.AutoMigrate(&domain.User{})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}
