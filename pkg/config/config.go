package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/arcana/internal/shared/infrastructure/convert"
	"github.com/felixgeelhaar/arcana/internal/shared/infrastructure/security"
)

// DefaultAPIURL is the production tarot backend.
const DefaultAPIURL = "https://anon-pix.fly.dev"

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Backend API
	APIURL          string
	APITimeout      time.Duration
	APIRate         float64
	APIBurst        int
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	// Credential cache
	CacheURL      string
	EncryptionKey string

	// Reading workflow
	CatalogLimit   int
	RevealInterval time.Duration
	SettleDelay    time.Duration
	HistoryLimit   int

	// Google sign-in
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// MCP
	MCPAddr      string
	MCPAuthToken string

	// Metrics
	MetricsAddr string
}

// fileConfig mirrors the optional YAML file passed with --config.
type fileConfig struct {
	App struct {
		Env       string `yaml:"env"`
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"app"`
	API struct {
		URL             string  `yaml:"url"`
		Timeout         string  `yaml:"timeout"`
		Rate            float64 `yaml:"rate"`
		Burst           int     `yaml:"burst"`
		BreakerFailures uint32  `yaml:"breaker_failures"`
	} `yaml:"api"`
	Cache struct {
		URL string `yaml:"url"`
	} `yaml:"cache"`
	Reading struct {
		CatalogLimit   int    `yaml:"catalog_limit"`
		RevealInterval string `yaml:"reveal_interval"`
	} `yaml:"reading"`
	Google struct {
		ClientID    string `yaml:"client_id"`
		RedirectURL string `yaml:"redirect_url"`
	} `yaml:"google"`
	MCP struct {
		Addr string `yaml:"addr"`
	} `yaml:"mcp"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile resolves configuration as defaults, then the YAML file at path
// (skipped when empty or missing), then environment variables.
func LoadFile(path string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		raw, err := security.SafeReadFile(path)
		switch {
		case err == nil:
			if err := cfg.applyFile(raw); err != nil {
				return nil, err
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		AppEnv:    "development",
		LogLevel:  "warn",
		LogFormat: "text",

		APIURL:          DefaultAPIURL,
		APITimeout:      30 * time.Second,
		APIRate:         10,
		APIBurst:        5,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,

		CacheURL: defaultCachePath(),

		CatalogLimit:   30,
		RevealInterval: 1500 * time.Millisecond,
		SettleDelay:    300 * time.Millisecond,
		HistoryLimit:   10,

		GoogleRedirectURL: "urn:ietf:wg:oauth:2.0:oob",

		MCPAddr: "127.0.0.1:8082",
	}
}

func (c *Config) applyFile(raw []byte) error {
	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if f.App.Env != "" {
		c.AppEnv = f.App.Env
	}
	if f.App.LogLevel != "" {
		c.LogLevel = f.App.LogLevel
	}
	if f.App.LogFormat != "" {
		c.LogFormat = f.App.LogFormat
	}
	if f.API.URL != "" {
		c.APIURL = f.API.URL
	}
	if f.API.Timeout != "" {
		d, err := time.ParseDuration(f.API.Timeout)
		if err != nil {
			return fmt.Errorf("parse api.timeout: %w", err)
		}
		c.APITimeout = d
	}
	if f.API.Rate > 0 {
		c.APIRate = f.API.Rate
	}
	if f.API.Burst > 0 {
		c.APIBurst = f.API.Burst
	}
	if f.API.BreakerFailures > 0 {
		c.BreakerFailures = f.API.BreakerFailures
	}
	if f.Cache.URL != "" {
		c.CacheURL = f.Cache.URL
	}
	if f.Reading.CatalogLimit > 0 {
		c.CatalogLimit = f.Reading.CatalogLimit
	}
	if f.Reading.RevealInterval != "" {
		d, err := time.ParseDuration(f.Reading.RevealInterval)
		if err != nil {
			return fmt.Errorf("parse reading.reveal_interval: %w", err)
		}
		c.RevealInterval = d
	}
	if f.Google.ClientID != "" {
		c.GoogleClientID = f.Google.ClientID
	}
	if f.Google.RedirectURL != "" {
		c.GoogleRedirectURL = f.Google.RedirectURL
	}
	if f.MCP.Addr != "" {
		c.MCPAddr = f.MCP.Addr
	}
	if f.Metrics.Addr != "" {
		c.MetricsAddr = f.Metrics.Addr
	}
	return nil
}

func (c *Config) applyEnv() {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	c.APIURL = strings.TrimRight(getEnv("ARCANA_API_URL", c.APIURL), "/")
	c.APITimeout = getDurationEnv("ARCANA_API_TIMEOUT", c.APITimeout)
	c.APIRate = getFloatEnv("ARCANA_API_RATE", c.APIRate)
	c.APIBurst = getIntEnv("ARCANA_API_BURST", c.APIBurst)
	c.BreakerFailures = convert.IntToUint32Clamped(getIntEnv("ARCANA_BREAKER_FAILURES", int(c.BreakerFailures)))
	c.BreakerTimeout = getDurationEnv("ARCANA_BREAKER_TIMEOUT", c.BreakerTimeout)

	c.CacheURL = getEnv("ARCANA_CACHE_URL", c.CacheURL)
	c.EncryptionKey = getEnv("ARCANA_ENCRYPTION_KEY", c.EncryptionKey)

	c.CatalogLimit = getIntEnv("ARCANA_CATALOG_LIMIT", c.CatalogLimit)
	c.RevealInterval = getDurationEnv("ARCANA_REVEAL_INTERVAL", c.RevealInterval)
	c.SettleDelay = getDurationEnv("ARCANA_SETTLE_DELAY", c.SettleDelay)

	c.GoogleClientID = getEnv("GOOGLE_CLIENT_ID", c.GoogleClientID)
	c.GoogleClientSecret = getEnv("GOOGLE_CLIENT_SECRET", c.GoogleClientSecret)
	c.GoogleRedirectURL = getEnv("GOOGLE_REDIRECT_URL", c.GoogleRedirectURL)

	c.MCPAddr = getEnv("MCP_ADDR", c.MCPAddr)
	c.MCPAuthToken = getEnv("MCP_AUTH_TOKEN", c.MCPAuthToken)

	c.MetricsAddr = getEnv("ARCANA_METRICS_ADDR", c.MetricsAddr)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GoogleEnabled reports whether Google sign-in is configured.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arcana/cache.db"
	}
	return home + "/.arcana/cache.db"
}
