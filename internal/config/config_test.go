package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig_IsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, ":8000", cfg.Server.Addr())
	assert.Equal(t, CORSModePermissive, cfg.CORS.Mode)
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"}, cfg.CORS.AllowedHeaders)
}

func TestApplyDefaults_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 1234
	cfg.CORS.AllowedMethods = []string{"GET"}
	ApplyDefaults(cfg)

	assert.Equal(t, 1234, cfg.Server.Port)
	assert.Equal(t, []string{"GET"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, DefaultServerMode, cfg.Server.Mode)
}

func TestApplyDefaults_DoesNotAliasDefaultSlices(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.CORS.AllowedMethods[0] = "PATCH"

	assert.Equal(t, "GET", DefaultCORSMethods[0])
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *Config) { c.Server.Port = 65536 }, "server.port"},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"negative body size", func(c *Config) { c.Server.MaxBodySize = -1 }, "server.max_body_size"},
		{"bad cors mode", func(c *Config) { c.CORS.Mode = "open" }, "cors.mode"},
		{"allowlist without origins", func(c *Config) { c.CORS.Mode = CORSModeAllowlist }, "cors.allowed_origins"},
		{"negative max age", func(c *Config) { c.CORS.MaxAge = -5 }, "cors.max_age"},
		{"negative body log size", func(c *Config) { c.RequestLog.MaxBodyLogSize = -1 }, "request_log"},
		{"missing db host", func(c *Config) { c.Database.Host = "" }, "database.host"},
		{"bad db port", func(c *Config) { c.Database.Port = 0 }, "database.port"},
		{"missing db name", func(c *Config) { c.Database.DBName = "" }, "database.db_name"},
		{"negative retries", func(c *Config) { c.Database.ConnectRetries = -1 }, "database.connect_retries"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "text" }, "log.format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidate_URLSkipsDiscreteDatabaseFields(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Database.URL = "postgres://localhost/jobs"
	cfg.Database.Host = ""
	cfg.Database.DBName = ""
	assert.NoError(t, cfg.Validate())
}

//Personal.AI order the ending
