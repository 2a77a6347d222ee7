// Package config loads the service configuration from YAML.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/snickbit/dungeon/internal/dungeon"
	"github.com/snickbit/dungeon/internal/logger"
)

// Config holds the full service configuration.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   logger.Config   `yaml:"logging"`
}

// GeneratorConfig holds the default generation options applied when a
// request carries none of its own.
type GeneratorConfig struct {
	Options dungeon.Options `yaml:",inline"`
}

// ServerConfig holds the WebSocket service settings.
type ServerConfig struct {
	// Address is the host:port the service listens on.
	Address string `yaml:"address"`

	// AllowedOrigins lists origins allowed to connect. Empty enforces
	// same-origin; "*" allows everything.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxConnections is the total concurrent connection cap. 0 means
	// unlimited.
	MaxConnections int `yaml:"max_connections"`

	// AccessKeyHash is a bcrypt hash of the shared access key. Empty
	// disables authentication.
	AccessKeyHash string `yaml:"access_key_hash"`

	// MaxStageSize rejects generation requests above this width or
	// height, bounding per-request memory.
	MaxStageSize int `yaml:"max_stage_size"`
}

// StorageConfig holds the dungeon archive settings.
type StorageConfig struct {
	// Enabled switches the archive on.
	Enabled bool `yaml:"enabled"`

	// Driver selects the database dialect: "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// Path is the SQLite database file path.
	Path string `yaml:"path"`

	// DSN is the PostgreSQL connection string.
	DSN string `yaml:"dsn"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{Options: dungeon.DefaultOptions()},
		Server: ServerConfig{
			Address:        ":4500",
			AllowedOrigins: []string{},
			MaxConnections: 100,
			MaxStageSize:   501,
		},
		Storage: StorageConfig{
			Enabled: false,
			Driver:  "sqlite",
			Path:    "data/dungeons.db",
		},
		Logging: logger.DefaultConfig(),
	}
}

// LoadConfig loads configuration from a YAML file. A missing file
// yields the defaults; a malformed file yields the defaults plus the
// parse error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// IsOriginAllowed checks an Origin header against the allowed list,
// falling back to same-origin when the list is empty.
func (c *ServerConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return sameOrigin(origin, requestHost)
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// sameOrigin reports whether the origin's host matches the request host.
// An absent Origin header counts as same-origin (non-browser client).
func sameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true
	}
	host := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		host = origin[idx+3:]
	}
	return strings.TrimSuffix(host, "/") == requestHost
}
