package database

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"gin-user-rbac/internal/core/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
)

var ErrUnsupportedDriver = errors.New("unsupported db driver")

type Opts struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

func Dialector(o Opts, l *zap.Logger) (gorm.Dialector, error) {
	switch o.Driver {
	case "postgres":
		return postgres.Open(o.DSN), nil
	case "mysql":
		dsn := normalizeMySQLDSN(o.DSN, o.Username, o.Password)
		l.Info("mysql dsn normalized", zap.String("dsn", maskDSN(dsn)))
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
	}
}

func NewGorm(o Opts, l *zap.Logger) (*gorm.DB, error) {
	dial, err := Dialector(o, l)
	if err != nil {
		return nil, err
	}
	db, err := Open(dial, o.LogLevel, l)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	return db.Session(&gorm.Session{PrepareStmt: true}), nil
}

// Open 打开连接，gorm 日志转到 zap；SkipDefaultTransaction 只在需要时手动开 Tx
func Open(dial gorm.Dialector, logLevel string, l *zap.Logger) (*gorm.DB, error) {
	std, err := logger.ToStdLogger(l.Named("gorm"), zapcore.WarnLevel)
	if err != nil {
		return nil, err
	}
	return gorm.Open(dial, &gorm.Config{
		Logger: glogger.New(std, glogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormLogLevel(logLevel),
			IgnoreRecordNotFoundError: true,
		}),
		SkipDefaultTransaction: true,
	})
}

func gormLogLevel(s string) glogger.LogLevel {
	switch s {
	case "silent":
		return glogger.Silent
	case "error":
		return glogger.Error
	case "info":
		return glogger.Info
	default:
		return glogger.Warn
	}
}

func maskDSN(dsn string) string {
	at := strings.Index(dsn, "@")
	if at <= 0 {
		return dsn
	}
	if colon := strings.Index(dsn[:at], ":"); colon > 0 {
		return dsn[:colon+1] + "****" + dsn[at:]
	}
	return dsn
}

// normalizeMySQLDSN 把 mysql:// / jdbc:mysql:// URL 转成 go-sql-driver 语法：user:pass@tcp(host:port)/db?...
func normalizeMySQLDSN(input, userOverride, passOverride string) string {
	in := strings.TrimPrefix(strings.TrimSpace(input), "jdbc:")
	if !strings.HasPrefix(in, "mysql://") {
		return in
	}

	u, err := url.Parse(in)
	if err != nil {
		return in // 交给驱动报错
	}

	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	q := u.Query()
	if v := q.Get("user"); v != "" {
		user = v
	}
	if v := q.Get("password"); v != "" {
		pass = v
	}
	q.Del("user")
	q.Del("password")
	if userOverride != "" {
		user = userOverride
	}
	if passOverride != "" {
		pass = passOverride
	}

	// JDBC 参数适配
	if q.Get("characterEncoding") != "" && q.Get("charset") == "" {
		q.Set("charset", q.Get("characterEncoding"))
	}
	q.Del("characterEncoding")
	q.Del("useUnicode")
	q.Del("zeroDateTimeBehavior")
	if v := strings.ToLower(q.Get("useSSL")); v != "" {
		switch v {
		case "true", "1":
			q.Set("tls", "true")
		case "skip-verify", "preferred":
			q.Set("tls", v)
		default:
			q.Set("tls", "false")
		}
		q.Del("useSSL")
	}
	if tz := q.Get("serverTimezone"); tz != "" {
		q.Set("loc", tz)
		q.Del("serverTimezone")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	if cred != "" {
		cred += "@"
	}
	dsn := fmt.Sprintf("%stcp(%s)/%s", cred, u.Host, strings.TrimPrefix(u.Path, "/"))
	if enc := q.Encode(); enc != "" {
		dsn += "?" + enc
	}
	return dsn
}
