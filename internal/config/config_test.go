package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/shop-service/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: shop-service
  port: "9090"
postgres:
  host: db.local
  user: shop
  password: secret
  dbname: shop_db
session:
  cookie_name: sid
  ttl: 2h
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.App.Port)
	require.Equal(t, "db.local", cfg.Postgres.Host)
	require.Equal(t, "sid", cfg.Session.CookieName)
	require.Equal(t, config.Duration(2*time.Hour), cfg.Session.TTL)

	// Дефолты для незаполненных значений.
	require.Equal(t, "5432", cfg.Postgres.Port)
	require.Equal(t, "disable", cfg.Postgres.SSLMode)
	require.Equal(t, int32(10), cfg.Postgres.MaxConns)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfigFile(t, `
postgres:
  host: db.local
  user: shop
  dbname: shop_db
`)

	t.Setenv("DB_HOST", "other.local")
	t.Setenv("APP_PORT", "8081")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "other.local", cfg.Postgres.Host)
	require.Equal(t, "8081", cfg.App.Port)
	require.Equal(t, config.Duration(30*time.Minute), cfg.Session.TTL)
}

func TestLoad_MissingRequired(t *testing.T) {
	path := writeConfigFile(t, `
postgres:
  user: shop
  dbname: shop_db
`)

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "postgres host is required")
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfigFile(t, `
postgres:
  host: db.local
  user: shop
  dbname: shop_db
session:
  ttl: not-a-duration
`)

	_, err := config.Load(path)
	require.Error(t, err)
}
