package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Load()
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "127.0.0.1:5001", cfg.HTTPAddr)
	require.Equal(t, "sqlite", cfg.Storage.Driver)
	require.Equal(t, "site.db", cfg.Storage.SQLite.Path)
	require.False(t, cfg.Redis.Enable)
	require.Equal(t, "adminpass", cfg.Auth.Password)
}

func TestFileOverrideMergesNonZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
env: prod
http_addr: ":9000"
storage:
  driver: mysql
  mysql:
    host: db.internal
    password: secreto
redis:
  enable: true
  addr: cache.internal:6379
auth:
  password: otra-clave
limits:
  login_per_minute: 3
  window: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := Load()
	require.NoError(t, loadFromFile(path, &cfg))

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, ":9000", cfg.HTTPAddr)
	require.Equal(t, "mysql", cfg.Storage.Driver)
	require.Equal(t, "db.internal", cfg.Storage.MySQL.Host)
	// 未覆盖的字段保留默认值
	require.Equal(t, "root", cfg.Storage.MySQL.User)
	require.Equal(t, "site.db", cfg.Storage.SQLite.Path)
	require.True(t, cfg.Redis.Enable)
	require.Equal(t, "otra-clave", cfg.Auth.Password)
	require.Equal(t, 3, cfg.Limits.LoginPerMinute)
	require.Equal(t, 30*time.Second, cfg.Limits.Window)
}

func TestDSNMasked(t *testing.T) {
	m := MySQLConfig{Host: "h", Port: 3306, User: "u", Password: "p", DBName: "d"}
	require.NotContains(t, m.DSNMasked(), ":p@")
	require.Contains(t, m.DSNMasked(), "******")
}

func TestFirstExisting(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "exists.yaml")
	require.NoError(t, os.WriteFile(real, []byte("env: dev"), 0o600))
	require.Equal(t, real, FirstExisting(filepath.Join(dir, "missing.yaml"), real))
	require.Equal(t, "", FirstExisting(filepath.Join(dir, "missing.yaml"), ""))
}
