package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvVars clears all arcana-related environment variables.
func clearEnvVars() {
	envVars := []string{
		"APP_ENV", "LOG_LEVEL", "LOG_FORMAT",
		"ARCANA_API_URL", "ARCANA_API_TIMEOUT", "ARCANA_API_RATE", "ARCANA_API_BURST",
		"ARCANA_BREAKER_FAILURES", "ARCANA_BREAKER_TIMEOUT",
		"ARCANA_CACHE_URL", "ARCANA_ENCRYPTION_KEY",
		"ARCANA_CATALOG_LIMIT", "ARCANA_REVEAL_INTERVAL", "ARCANA_SETTLE_DELAY",
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URL",
		"MCP_ADDR", "MCP_AUTH_TOKEN", "ARCANA_METRICS_ADDR",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, 30, cfg.CatalogLimit)
	assert.Equal(t, 1500*time.Millisecond, cfg.RevealInterval)
	assert.Equal(t, 300*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, uint32(5), cfg.BreakerFailures)
	assert.Contains(t, cfg.CacheURL, "cache.db")
	assert.False(t, cfg.GoogleEnabled())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("APP_ENV", "production")
	os.Setenv("ARCANA_API_URL", "http://localhost:3000/")
	os.Setenv("ARCANA_API_TIMEOUT", "5s")
	os.Setenv("ARCANA_API_RATE", "2.5")
	os.Setenv("ARCANA_CACHE_URL", "memory")
	os.Setenv("ARCANA_REVEAL_INTERVAL", "10ms")
	os.Setenv("GOOGLE_CLIENT_ID", "client")
	os.Setenv("GOOGLE_CLIENT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, 2.5, cfg.APIRate)
	assert.Equal(t, "memory", cfg.CacheURL)
	assert.Equal(t, 10*time.Millisecond, cfg.RevealInterval)
	assert.True(t, cfg.GoogleEnabled())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("ARCANA_API_TIMEOUT", "soon")
	os.Setenv("ARCANA_CATALOG_LIMIT", "many")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, 30, cfg.CatalogLimit)
}

func TestLoadFile(t *testing.T) {
	t.Run("file values sit between defaults and env", func(t *testing.T) {
		clearEnvVars()
		defer clearEnvVars()

		path := filepath.Join(t.TempDir(), "arcana.yaml")
		content := `
app:
  log_level: debug
api:
  url: https://staging.example.com
  timeout: 12s
cache:
  url: redis://localhost:6379/2
reading:
  catalog_limit: 22
  reveal_interval: 2s
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
		os.Setenv("ARCANA_CATALOG_LIMIT", "12")

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "https://staging.example.com", cfg.APIURL)
		assert.Equal(t, 12*time.Second, cfg.APITimeout)
		assert.Equal(t, "redis://localhost:6379/2", cfg.CacheURL)
		assert.Equal(t, 2*time.Second, cfg.RevealInterval)
		assert.Equal(t, 12, cfg.CatalogLimit)
	})

	t.Run("missing file is ignored", func(t *testing.T) {
		clearEnvVars()
		defer clearEnvVars()

		cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	})

	t.Run("malformed file fails", func(t *testing.T) {
		clearEnvVars()
		defer clearEnvVars()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0600))

		_, err := LoadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config file")
	})

	t.Run("bad duration fails", func(t *testing.T) {
		clearEnvVars()
		defer clearEnvVars()

		path := filepath.Join(t.TempDir(), "dur.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api:\n  timeout: later\n"), 0600))

		_, err := LoadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api.timeout")
	})
}
