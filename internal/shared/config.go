package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

const envPrefix = "YTMETA_"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Normalize NormalizeConfig `toml:"normalize"`
	Service   ServiceConfig   `toml:"service"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	CORSOrigin      string `toml:"cors_origin"`
	ShutdownTimeout int    `toml:"shutdown_timeout_seconds"`
}

// CatalogConfig contains settings for the upstream catalog proxy.
type CatalogConfig struct {
	BaseURL   string  `toml:"base_url"`
	AuthFile  string  `toml:"auth_file"`
	Token     string  `toml:"token"`
	Timeout   int     `toml:"timeout_seconds"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// NormalizeConfig selects how upstream entries are mapped onto songs.
type NormalizeConfig struct {
	Mode           string `toml:"mode"`
	ArtistFallback string `toml:"artist_fallback"`
}

// ServiceConfig contains query service limits.
type ServiceConfig struct {
	DefaultLimit       int  `toml:"default_limit"`
	RelatedArtistLimit int  `toml:"related_artist_limit"`
	ConcurrentRelated  bool `toml:"concurrent_related"`
	BatchConcurrency   int  `toml:"batch_concurrency"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Addr returns the host:port pair the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ShutdownGrace returns the graceful shutdown window.
func (s ServerConfig) ShutdownGrace() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// RequestTimeout returns the per-request timeout for upstream calls.
func (c CatalogConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads variables from the given dotenv files (a missing file is ignored)
// and applies any YTMETA_* overrides to the config.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: failed to load %s: %v", ErrInvalidConfig, f, err)
		}
	}

	strVars := map[string]*string{
		"HOST":            &c.Server.Host,
		"CORS_ORIGIN":     &c.Server.CORSOrigin,
		"CATALOG_URL":     &c.Catalog.BaseURL,
		"CATALOG_TOKEN":   &c.Catalog.Token,
		"CATALOG_AUTH":    &c.Catalog.AuthFile,
		"NORMALIZE_MODE":  &c.Normalize.Mode,
		"ARTIST_FALLBACK": &c.Normalize.ArtistFallback,
		"LOG_LEVEL":       &c.Log.Level,
	}
	for key, dst := range strVars {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "PORT"); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sPORT=%q", ErrInvalidConfig, envPrefix, v)
		}
		c.Server.Port = port
	}

	return nil
}

// Validate checks the config for values the service cannot run with.
func (c *Config) Validate() error {
	switch c.Normalize.Mode {
	case "strict", "unified":
	default:
		return fmt.Errorf("%w: unknown normalize mode %q", ErrInvalidConfig, c.Normalize.Mode)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("%w: catalog base_url is required", ErrMissingConfig)
	}
	if c.Service.DefaultLimit <= 0 || c.Service.RelatedArtistLimit <= 0 {
		return fmt.Errorf("%w: service limits must be positive", ErrInvalidConfig)
	}
	if c.Service.BatchConcurrency <= 0 {
		return fmt.Errorf("%w: batch_concurrency must be positive", ErrInvalidConfig)
	}

	return nil
}
