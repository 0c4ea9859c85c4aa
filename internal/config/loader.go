package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/turtacn/JobPortal/pkg/errors"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "JOBPORTAL"

// portEnvAlias is the conventional, prefix-less port variable honoured for
// parity with PaaS runtimes that inject PORT.
const portEnvAlias = "PORT"

// newViper builds a pre-configured Viper instance: YAML file type, JOBPORTAL_
// env prefix, automatic env binding, and a "." → "_" key replacer so that
// "database.host" resolves to JOBPORTAL_DATABASE_HOST.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv only resolves keys viper already knows about, so every
	// key that may arrive purely from the environment is registered here.
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.mode", DefaultServerMode)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("server.idle_timeout", DefaultIdleTimeout)
	v.SetDefault("server.max_body_size", DefaultMaxBodySize)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("cors.mode", DefaultCORSMode)
	v.SetDefault("cors.allowed_origins", []string{})
	v.SetDefault("cors.allowed_methods", DefaultCORSMethods)
	v.SetDefault("cors.allowed_headers", DefaultCORSHeaders)
	v.SetDefault("cors.exposed_headers", []string{})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.allow_wildcard", false)
	v.SetDefault("cors.max_age", 0)
	v.SetDefault("request_log.max_body_log_size", DefaultMaxBodyLogSize)
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", DefaultDBHost)
	v.SetDefault("database.port", DefaultDBPort)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.db_name", DefaultDBName)
	v.SetDefault("database.ssl_mode", DefaultDBSSLMode)
	v.SetDefault("database.connect_timeout", DefaultDBConnectTimeout)
	v.SetDefault("database.connect_retries", DefaultDBConnectRetries)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
	v.SetDefault("metrics.path", DefaultMetricsPath)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	// JOBPORTAL_SERVER_PORT wins over PORT when both are set.
	_ = v.BindEnv("server.port", envPrefix+"_SERVER_PORT", portEnvAlias)
	// DATABASE_URL is honoured for the same reason as PORT.
	_ = v.BindEnv("database.url", envPrefix+"_DATABASE_URL", "DATABASE_URL")
	return v
}

// loadDotEnv loads .env.local then .env into the process environment.
// Missing files are not an error; existing variables are never overwritten.
func loadDotEnv() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()
}

// Load reads the YAML file at configPath, merges JOBPORTAL_* environment
// overrides (after loading any .env file), applies defaults, and validates.
func Load(configPath string) (*Config, error) {
	loadDotEnv()

	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigRead, "config: failed to read config file").
			WithDetail(configPath)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from the environment (and .env files)
// with no config file required.
//
//	JOBPORTAL_<SECTION>_<FIELD>   e.g.  JOBPORTAL_CORS_MODE, JOBPORTAL_DATABASE_HOST
//	PORT                          alias for JOBPORTAL_SERVER_PORT
func LoadFromEnv() (*Config, error) {
	loadDotEnv()
	return unmarshalAndFinalize(newViper())
}

// unmarshalAndFinalize unmarshals viper state into a Config, applies defaults
// and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "config: failed to unmarshal configuration")
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

//Personal.AI order the ending
