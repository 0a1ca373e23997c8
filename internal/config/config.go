package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SourceHTTP = "http"
	SourceDir  = "dir"
)

type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Session SessionConfig
	Logger  LoggerConfig
	Backend BackendConfig
	Player  PlayerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// CatalogConfig selects where experiment datasets come from.
type CatalogConfig struct {
	Source       string
	DataBaseURL  string
	AssetBaseURL string
	Dir          string
	Watch        bool
	Timeout      time.Duration
	Preload      bool
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	TTL time.Duration
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type BackendConfig struct {
	URL string
}

// PlayerConfig names the external program used for audio playback.
type PlayerConfig struct {
	Command string
	Args    []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8001)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "20s")
	v.SetDefault("server.idle_timeout", "20s")

	v.SetDefault("catalog.source", SourceHTTP)
	v.SetDefault("catalog.data_base_url", "https://gitlab.com/Datenflix007/alltagslabordata/-/raw/main")
	v.SetDefault("catalog.asset_base_url", "https://gitlab.com/Datenflix007/alltagslabordata/-/raw/main")
	v.SetDefault("catalog.dir", "./data")
	v.SetDefault("catalog.watch", false)
	v.SetDefault("catalog.timeout", "10s")
	v.SetDefault("catalog.preload", true)

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.sweep_interval", "1m")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("backend.url", "")

	v.SetDefault("player.command", "mpv")
	v.SetDefault("player.args", []string{"--no-video", "--really-quiet"})
}

// LoadConfig reads config.yaml (if any) and applies environment overrides.
// Every key has a default, so a missing config file is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// CATALOG_SOURCE overrides catalog.source, REDIS_ADDRESS overrides redis.address, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
		},
		Catalog: CatalogConfig{
			Source:       strings.ToLower(v.GetString("catalog.source")),
			DataBaseURL:  v.GetString("catalog.data_base_url"),
			AssetBaseURL: v.GetString("catalog.asset_base_url"),
			Dir:          v.GetString("catalog.dir"),
			Watch:        v.GetBool("catalog.watch"),
			Timeout:      v.GetDuration("catalog.timeout"),
			Preload:      v.GetBool("catalog.preload"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			TTL: v.GetDuration("cache.ttl"),
		},
		Session: SessionConfig{
			TTL:           v.GetDuration("session.ttl"),
			SweepInterval: v.GetDuration("session.sweep_interval"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Backend: BackendConfig{
			URL: strings.TrimSpace(v.GetString("backend.url")),
		},
		Player: PlayerConfig{
			Command: v.GetString("player.command"),
			Args:    v.GetStringSlice("player.args"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceHTTP:
		if c.Catalog.DataBaseURL == "" {
			return fmt.Errorf("catalog.data_base_url must be set for the http source")
		}
	case SourceDir:
		if c.Catalog.Dir == "" {
			return fmt.Errorf("catalog.dir must be set for the dir source")
		}
	default:
		return fmt.Errorf("unsupported catalog.source %q (want %q or %q)", c.Catalog.Source, SourceHTTP, SourceDir)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// BackendURL is the public base URL of the API. A backend.url pointing at a
// loopback host is rewritten to the local listener port.
func (c *Config) BackendURL() string {
	u := strings.TrimRight(strings.TrimSpace(c.Backend.URL), "/")
	if u == "" || strings.Contains(u, "localhost") || strings.Contains(u, "127.0.0.1") {
		return fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	return u
}
