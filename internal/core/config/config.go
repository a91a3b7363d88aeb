package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
	LeewaySec         int
}

type Redis struct {
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	UserTTLSec int    `mapstructure:"userttlsec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Auth struct {
	RehashOnUpdate bool
}

// Compat 兼容旧行为的开关
type Compat struct {
	ExposePasswordHash bool
}

type Limits struct {
	MaxConcurrent int64
	MaxBodyBytes  int64
	TimeoutSec    int
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	DB     DB
	Redis  Redis `mapstructure:"redis"`
	Auth   Auth
	Compat Compat
	Limits Limits
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gin-user-rbac")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxsizemb", 100)
	v.SetDefault("log.file.maxbackups", 7)
	v.SetDefault("log.file.maxagedays", 30)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "gin-user-rbac")
	v.SetDefault("jwt.accesstokenttlmin", 60)
	v.SetDefault("jwt.leewaysec", 60)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 10)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.userttlsec", 30)

	v.SetDefault("auth.rehashonupdate", true)
	v.SetDefault("compat.exposepasswordhash", false)

	v.SetDefault("limits.maxconcurrent", 300)
	v.SetDefault("limits.maxbodybytes", 1<<20)
	v.SetDefault("limits.timeoutsec", 10)
}

// LoadFrom 读取 yaml + APP_ 前缀环境变量（如 APP_JWT_SECRET）
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func Load(path string) *Config {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	c, err := LoadFrom(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return c
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.JWT.AccessTokenTTLMin <= 0 {
		errs = append(errs, errors.New("jwt.accessTokenTTLMin must be positive"))
	}
	switch c.DB.Driver {
	case "postgres", "mysql", "memory": // memory 仅用于本地调试，数据不落盘
	default:
		errs = append(errs, fmt.Errorf("db.driver %q not supported", c.DB.Driver))
	}
	return errors.Join(errs...)
}
