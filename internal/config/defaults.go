package config

import (
	"net/http"
	"time"

	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort      = 8000
	DefaultServerMode      = "debug"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultMaxBodySize     = 100 << 10 // matches the express.json() default limit
	DefaultShutdownTimeout = 30 * time.Second

	DefaultCORSMode = CORSModePermissive

	DefaultMaxBodyLogSize = 4096

	DefaultDBHost           = "localhost"
	DefaultDBPort           = 5432
	DefaultDBName           = "jobportal"
	DefaultDBSSLMode        = "disable"
	DefaultDBMaxOpenConns   = 25
	DefaultDBMaxIdleConns   = 10
	DefaultDBConnMaxLife    = 30 * time.Minute
	DefaultDBConnectTimeout = 5 * time.Second
	DefaultDBConnectRetries = 3

	DefaultMetricsNamespace = "jobportal"
	DefaultMetricsPath      = "/metrics"

	DefaultLogLevel  = logging.LevelInfo
	DefaultLogFormat = "json"
)

// DefaultCORSMethods is the fixed method list advertised to browsers.
var DefaultCORSMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
}

// DefaultCORSHeaders is the fixed request-header list advertised to browsers.
var DefaultCORSHeaders = []string{
	"Content-Type",
	"Authorization",
	"X-Requested-With",
	"Accept",
	"Origin",
}

// NewDefaultConfig returns a Config with every field set to its default,
// including the boolean toggles that ApplyDefaults cannot infer.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.CORS.AllowCredentials = true
	cfg.Metrics.Enabled = true
	cfg.Database.ConnectRetries = DefaultDBConnectRetries
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with its default.
// Fields already set are left unchanged so explicit configuration wins.
// Booleans are not touched; their defaults are registered with viper.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// ── CORS ──────────────────────────────────────────────────────────────────
	if cfg.CORS.Mode == "" {
		cfg.CORS.Mode = DefaultCORSMode
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = append([]string(nil), DefaultCORSMethods...)
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = append([]string(nil), DefaultCORSHeaders...)
	}

	// ── Request log ───────────────────────────────────────────────────────────
	if cfg.RequestLog.MaxBodyLogSize == 0 {
		cfg.RequestLog.MaxBodyLogSize = DefaultMaxBodyLogSize
	}

	// ── Database ──────────────────────────────────────────────────────────────
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = DefaultDBSSLMode
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = DefaultDBMaxOpenConns
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = DefaultDBMaxIdleConns
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = DefaultDBConnMaxLife
	}
	if cfg.Database.ConnectTimeout == 0 {
		cfg.Database.ConnectTimeout = DefaultDBConnectTimeout
	}
	// ConnectRetries: 0 is a valid explicit value (single attempt); the
	// default of DefaultDBConnectRetries is registered with viper instead.

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

//Personal.AI order the ending
