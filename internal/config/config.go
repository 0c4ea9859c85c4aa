// Package config defines all configuration structures for the job portal
// backend.  No I/O lives in this file, only plain data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/JobPortal/pkg/errors"
)

// Version is injected at build time via ldflags.
var Version = "dev"

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// CORS modes.
const (
	CORSModePermissive = "permissive"
	CORSModeAllowlist  = "allowlist"
)

// CORSConfig holds the cross-origin policy.
type CORSConfig struct {
	Mode             string   `mapstructure:"mode"` // "permissive" | "allowlist"
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowWildcard    bool     `mapstructure:"allow_wildcard"`
	MaxAge           int      `mapstructure:"max_age"`
}

// RequestLogConfig holds request-logging parameters.
type RequestLogConfig struct {
	// MaxBodyLogSize caps how many bytes of an error body are logged.
	MaxBodyLogSize int `mapstructure:"max_body_log_size"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	// URL, when set, takes precedence over the discrete fields.
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	ConnectRetries  int           `mapstructure:"connect_retries"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	CORS       CORSConfig        `mapstructure:"cors"`
	RequestLog RequestLogConfig  `mapstructure:"request_log"`
	Database   DatabaseConfig    `mapstructure:"database"`
	Metrics    MetricsConfig     `mapstructure:"metrics"`
	Log        logging.LogConfig `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of a fully-populated Config and
// returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid("server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return invalid("server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.MaxBodySize < 0 {
		return invalid("server.max_body_size must be ≥ 0, got %d", c.Server.MaxBodySize)
	}

	switch c.CORS.Mode {
	case CORSModePermissive:
	case CORSModeAllowlist:
		if len(c.CORS.AllowedOrigins) == 0 {
			return invalid("cors.allowed_origins must not be empty in allowlist mode")
		}
	default:
		return invalid("cors.mode %q is invalid; expected permissive|allowlist", c.CORS.Mode)
	}
	if c.CORS.MaxAge < 0 {
		return invalid("cors.max_age must be ≥ 0, got %d", c.CORS.MaxAge)
	}

	if c.RequestLog.MaxBodyLogSize < 0 {
		return invalid("request_log.max_body_log_size must be ≥ 0, got %d", c.RequestLog.MaxBodyLogSize)
	}

	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return invalid("database.host is required when database.url is empty")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return invalid("database.port %d is out of range [1, 65535]", c.Database.Port)
		}
		if c.Database.DBName == "" {
			return invalid("database.db_name is required when database.url is empty")
		}
	}
	if c.Database.ConnectRetries < 0 {
		return invalid("database.connect_retries must be ≥ 0, got %d", c.Database.ConnectRetries)
	}

	switch c.Log.Level {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return invalid("log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return invalid("log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Newf(errors.ErrCodeConfigInvalid, "config: "+format, args...)
}

//Personal.AI order the ending
