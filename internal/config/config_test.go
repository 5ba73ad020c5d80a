package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data/sales.xlsx", cfg.Data.File)
	assert.Equal(t, "exports", cfg.Data.ExportDir)

	require.NoError(t, cfg.validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SALESDASH_SERVER_PORT", "9090")
	t.Setenv("SALESDASH_DATA_FILE", "fixtures/other.xlsx")
	t.Setenv("SALESDASH_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "fixtures/other.xlsx", cfg.Data.File)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched values keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_RejectsInvalidEnvValues(t *testing.T) {
	t.Setenv("SALESDASH_SERVER_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server port")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "negative read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = -time.Second },
			wantErr: "read timeout",
		},
		{
			name:    "zero write timeout",
			mutate:  func(c *Config) { c.Server.WriteTimeout = 0 },
			wantErr: "write timeout",
		},
		{
			name:    "missing data file",
			mutate:  func(c *Config) { c.Data.File = "" },
			wantErr: "data file",
		},
		{
			name: "rate limit enabled without rps",
			mutate: func(c *Config) {
				c.Server.RateLimit.Enabled = true
				c.Server.RateLimit.RPS = 0
			},
			wantErr: "rate limit rps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_DisabledRateLimitSkipsRPSCheck(t *testing.T) {
	cfg := Default()
	cfg.Server.RateLimit.Enabled = false
	cfg.Server.RateLimit.RPS = 0

	assert.NoError(t, cfg.validate())
}
