// Package config loads the notebox server configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file, then NOTEBOX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Auth modes.
const (
	AuthHeader = "header"
	AuthJWT    = "jwt"
)

// Config is the root configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
	Events EventsConfig `yaml:"events"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	Mode              string        `yaml:"mode"` // gin mode: debug, release or test
	CORSOrigins       []string      `yaml:"cors_origins"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ExposeState       bool          `yaml:"expose_state"` // serve /debug/state without auth
}

// AuthConfig selects how callers are identified.
type AuthConfig struct {
	Mode      string `yaml:"mode"`
	Header    string `yaml:"header"`
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// EventsConfig configures the change feed.
type EventsConfig struct {
	Buffer int `yaml:"buffer"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              "127.0.0.1:8080",
			Mode:              "release",
			ShutdownTimeout:   10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
		},
		Auth: AuthConfig{
			Mode:   AuthHeader,
			Header: "X-Principal",
			Issuer: "notebox",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Events: EventsConfig{
			Buffer: 100,
		},
	}
}

// Load reads path from fs (skipped when path is empty), applies the process
// environment and validates the result.
func Load(fs afero.Fs, path string) (*Config, error) {
	return load(fs, path, os.Getenv)
}

func load(fs afero.Fs, path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("NOTEBOX_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("NOTEBOX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("NOTEBOX_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := getenv("NOTEBOX_AUTH_MODE"); v != "" {
		c.Auth.Mode = v
	}
	if v := getenv("NOTEBOX_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := getenv("NOTEBOX_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = strings.Split(v, ",")
	}
	if v := getenv("NOTEBOX_EVENT_BUFFER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid NOTEBOX_EVENT_BUFFER: %w", err)
		}
		c.Events.Buffer = n
	}
	return nil
}

// Validate reports the first inconsistency found.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr cannot be empty")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}
	switch c.Auth.Mode {
	case AuthHeader:
		if c.Auth.Header == "" {
			return errors.New("auth.header cannot be empty in header mode")
		}
	case AuthJWT:
		if c.Auth.JWTSecret == "" {
			return errors.New("auth.jwt_secret is required in jwt mode")
		}
	default:
		return fmt.Errorf("auth.mode must be %q or %q, got %q", AuthHeader, AuthJWT, c.Auth.Mode)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Events.Buffer < 0 {
		return errors.New("events.buffer cannot be negative")
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log.level: %w", err)
	}
	return level, nil
}
