package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config 保存进程级配置（仅使用配置文件或内置默认值）。
// 字段提供开发友好的默认值；生产环境请在 config.yaml 中覆盖。
type Config struct {
	Env      string
	HTTPAddr string
	Storage  StorageConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Auth     AuthConfig
	Limits   LimitConfig
	Security SecurityConfig
}

// StorageConfig 选择持久化后端：sqlite（默认，单文件）或 mysql。
type StorageConfig struct {
	Driver string // sqlite | mysql
	SQLite SQLiteConfig
	MySQL  MySQLConfig
}

type SQLiteConfig struct {
	// 数据库文件路径；":memory:" 仅用于测试
	Path string
}

type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Params   string
}

func (m MySQLConfig) DSN() string {
	port := m.Port
	if port == 0 {
		port = 3306
	}
	host := m.Host
	if host == "" {
		host = "127.0.0.1"
	}
	db := m.DBName
	if db == "" {
		db = "d10"
	}
	params := m.Params
	if params == "" {
		params = "parseTime=true&loc=Local&charset=utf8mb4,utf8"
	}
	// 注意：Password 可能为空（本地无密码开发），生产强烈建议设置强密码
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s", m.User, m.Password, host, port, db, params)
}

// DSNMasked 返回口令打码后的 DSN，用于日志输出。
func (m MySQLConfig) DSNMasked() string {
	masked := m
	if masked.Password != "" {
		masked.Password = "******"
	}
	return masked.DSN()
}

type RedisConfig struct {
	// Enable 为 false 时完全不连接 Redis，登录限流随之关闭
	Enable   bool
	Addr     string
	DB       int
	Password string
}

type CORSConfig struct {
	// AllowedOrigins 为空表示允许任意来源（与原前端部署方式保持一致）
	AllowedOrigins []string
}

// AuthConfig 控制演示用登录口令。登录校验将请求口令与 Password 字面量直接比较，
// 令牌为无签名的前缀字符串——该方案仅为占位，不具备任何安全性。
type AuthConfig struct {
	Password string
}

type LimitConfig struct {
	// LoginPerMinute <= 0 表示不限流
	LoginPerMinute int
	Window         time.Duration
}

type SecurityConfig struct {
	HSTS struct {
		Enabled           bool
		MaxAgeSeconds     int
		IncludeSubdomains bool
	}
}

// Load 生成配置：先使用内置默认值，再用同目录的配置文件（config.yaml/yml/json）覆盖。
// 默认：SQLite 文件 site.db；Redis 关闭；监听 127.0.0.1:5001。
func Load() Config {
	// 1) 默认值（本地开发可直接运行）
	cfg := Config{
		Env:      "dev",
		HTTPAddr: "127.0.0.1:5001",
		Storage: StorageConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{Path: "site.db"},
			MySQL:  MySQLConfig{Host: "127.0.0.1", Port: 3306, User: "root", Password: "", DBName: "d10", Params: "parseTime=true&loc=Local&charset=utf8mb4,utf8"},
		},
		Redis:  RedisConfig{Enable: false, Addr: "127.0.0.1:6379", DB: 0, Password: ""},
		CORS:   CORSConfig{AllowedOrigins: nil},
		Auth:   AuthConfig{Password: "adminpass"},
		Limits: LimitConfig{LoginPerMinute: 10, Window: time.Minute},
		Security: func() SecurityConfig {
			var s SecurityConfig
			s.HSTS.Enabled = true
			s.HSTS.MaxAgeSeconds = 31536000
			s.HSTS.IncludeSubdomains = true
			return s
		}(),
	}

	// 2) 配置文件覆盖（若存在）
	if path := FirstExisting("config.yaml", "config.yml", "config.json"); path != "" {
		_ = loadFromFile(path, &cfg)
	}
	return cfg
}

// 配置文件格式：YAML 或 JSON。仅非零值会覆盖现有字段。
func loadFromFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var fm fileModel
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(b, &fm); err != nil {
			return err
		}
	} else if ext == ".json" || ext == "" {
		if err := json.Unmarshal(b, &fm); err != nil {
			return err
		}
	} else {
		return errors.New("unsupported config file format")
	}
	fm.apply(cfg)
	return nil
}

// --- 配置文件模型与合并逻辑 ---

type fileModel struct {
	Env      string        `yaml:"env" json:"env"`
	HTTPAddr string        `yaml:"http_addr" json:"http_addr"`
	Storage  *fileStorage  `yaml:"storage" json:"storage"`
	Redis    *fileRedis    `yaml:"redis" json:"redis"`
	CORS     *fileCORS     `yaml:"cors" json:"cors"`
	Auth     *fileAuth     `yaml:"auth" json:"auth"`
	Limits   *fileLimits   `yaml:"limits" json:"limits"`
	Security *fileSecurity `yaml:"security" json:"security"`
}

type fileStorage struct {
	Driver string      `yaml:"driver" json:"driver"`
	SQLite *fileSQLite `yaml:"sqlite" json:"sqlite"`
	MySQL  *fileMySQL  `yaml:"mysql" json:"mysql"`
}

type fileSQLite struct {
	Path string `yaml:"path" json:"path"`
}

type fileMySQL struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"password" json:"password"`
	DBName   string `yaml:"db" json:"db"`
	Params   string `yaml:"params" json:"params"`
}

type fileRedis struct {
	Enable   *bool  `yaml:"enable" json:"enable"`
	Addr     string `yaml:"addr" json:"addr"`
	DB       *int   `yaml:"db" json:"db"`
	Password string `yaml:"password" json:"password"`
}

type fileCORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
}

type fileAuth struct {
	Password string `yaml:"password" json:"password"`
}

type fileLimits struct {
	LoginPerMinute *int   `yaml:"login_per_minute" json:"login_per_minute"`
	Window         string `yaml:"window" json:"window"`
}

type fileSecurity struct {
	HSTS *struct {
		Enabled           *bool `yaml:"enabled" json:"enabled"`
		MaxAgeSeconds     *int  `yaml:"max_age_seconds" json:"max_age_seconds"`
		IncludeSubdomains *bool `yaml:"include_subdomains" json:"include_subdomains"`
	} `yaml:"hsts" json:"hsts"`
}

func (fm fileModel) apply(cfg *Config) {
	if fm.Env != "" {
		cfg.Env = fm.Env
	}
	if fm.HTTPAddr != "" {
		cfg.HTTPAddr = fm.HTTPAddr
	}
	if fm.Storage != nil {
		if fm.Storage.Driver != "" {
			cfg.Storage.Driver = fm.Storage.Driver
		}
		if fm.Storage.SQLite != nil && fm.Storage.SQLite.Path != "" {
			cfg.Storage.SQLite.Path = fm.Storage.SQLite.Path
		}
		if m := fm.Storage.MySQL; m != nil {
			if m.Host != "" {
				cfg.Storage.MySQL.Host = m.Host
			}
			if m.Port != 0 {
				cfg.Storage.MySQL.Port = m.Port
			}
			if m.User != "" {
				cfg.Storage.MySQL.User = m.User
			}
			if m.Password != "" {
				cfg.Storage.MySQL.Password = m.Password
			}
			if m.DBName != "" {
				cfg.Storage.MySQL.DBName = m.DBName
			}
			if m.Params != "" {
				cfg.Storage.MySQL.Params = m.Params
			}
		}
	}
	if r := fm.Redis; r != nil {
		if r.Enable != nil {
			cfg.Redis.Enable = *r.Enable
		}
		if r.Addr != "" {
			cfg.Redis.Addr = r.Addr
		}
		if r.DB != nil {
			cfg.Redis.DB = *r.DB
		}
		if r.Password != "" {
			cfg.Redis.Password = r.Password
		}
	}
	if fm.CORS != nil && fm.CORS.AllowedOrigins != nil {
		cfg.CORS.AllowedOrigins = fm.CORS.AllowedOrigins
	}
	if fm.Auth != nil && fm.Auth.Password != "" {
		cfg.Auth.Password = fm.Auth.Password
	}
	if l := fm.Limits; l != nil {
		if l.LoginPerMinute != nil {
			cfg.Limits.LoginPerMinute = *l.LoginPerMinute
		}
		if l.Window != "" {
			if d, err := time.ParseDuration(l.Window); err == nil {
				cfg.Limits.Window = d
			}
		}
	}
	if s := fm.Security; s != nil && s.HSTS != nil {
		if s.HSTS.Enabled != nil {
			cfg.Security.HSTS.Enabled = *s.HSTS.Enabled
		}
		if s.HSTS.MaxAgeSeconds != nil {
			cfg.Security.HSTS.MaxAgeSeconds = *s.HSTS.MaxAgeSeconds
		}
		if s.HSTS.IncludeSubdomains != nil {
			cfg.Security.HSTS.IncludeSubdomains = *s.HSTS.IncludeSubdomains
		}
	}
}

// FirstExisting 按顺序返回第一个存在的文件路径；若都不存在则返回空字符串。
// 注意：该函数用于在多路径间进行容错查找，如配置文件位置。
func FirstExisting(paths ...string) string {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
