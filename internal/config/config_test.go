package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 3600, cfg.HTTP.CacheMaxAge)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowOrigins)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 9090
  mode: debug
database:
  driver: sqlite
  dsn: "file::memory:"
timeline:
  seed_on_start: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.DSN)
	assert.True(t, cfg.Timeline.SeedOnStart)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/archive")
	t.Setenv("SERVER_PORT", "7000")

	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/archive", cfg.Database.DSN)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadConfigInvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := LoadConfigFrom(t.TempDir())
	assert.Error(t, err)
}
