package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, SourceHTTP, cfg.Catalog.Source)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Empty(t, cfg.Redis.Address)
	assert.Equal(t, "mpv", cfg.Player.Command)
	assert.Equal(t, []string{"--no-video", "--really-quiet"}, cfg.Player.Args)
	assert.Equal(t, "http://localhost:8001", cfg.BackendURL())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("ENV", "")

	yaml := []byte(`
server:
  port: 9090
catalog:
  source: dir
  dir: /srv/experiments
  watch: true
cache:
  ttl: 5m
logger:
  level: debug
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("BACKEND_URL", "https://labor.example.org/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, SourceDir, cfg.Catalog.Source)
	assert.Equal(t, "/srv/experiments", cfg.Catalog.Dir)
	assert.True(t, cfg.Catalog.Watch)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "https://labor.example.org", cfg.BackendURL())
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: 8001},
		Catalog: CatalogConfig{Source: "ftp"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Catalog = CatalogConfig{Source: SourceHTTP}
	assert.Error(t, cfg.Validate())

	cfg.Catalog = CatalogConfig{Source: SourceDir, Dir: "./data"}
	assert.NoError(t, cfg.Validate())

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestConfig_BackendURLLoopback(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: 8123}, Backend: BackendConfig{URL: "http://127.0.0.1:3000/"}}
	assert.Equal(t, "http://localhost:8123", cfg.BackendURL())

	cfg.Backend.URL = "https://api.example.org/"
	assert.Equal(t, "https://api.example.org", cfg.BackendURL())
}
