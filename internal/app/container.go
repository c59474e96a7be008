package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	billingApp "github.com/felixgeelhaar/arcana/internal/billing/application"
	"github.com/felixgeelhaar/arcana/internal/gateway"
	identityApp "github.com/felixgeelhaar/arcana/internal/identity/application"
	"github.com/felixgeelhaar/arcana/internal/identity/infrastructure/cache"
	readingApp "github.com/felixgeelhaar/arcana/internal/reading/application"
	"github.com/felixgeelhaar/arcana/pkg/config"
	"github.com/felixgeelhaar/arcana/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Credential cache
	Store cache.Store

	// Backend
	Gateway *gateway.Client

	// Metrics
	Registry       *prometheus.Registry
	MetricsHandler http.Handler

	// Services
	SessionService *identityApp.Service
	GoogleAuth     *identityApp.GoogleAuthenticator
	HistoryService *readingApp.History
	BillingService *billingApp.Service

	readingConfig readingApp.Config
}

// NewContainer wires the application and restores the cached session.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		readingConfig: readingApp.Config{
			CatalogLimit:   cfg.CatalogLimit,
			RevealInterval: cfg.RevealInterval,
			SettleDelay:    cfg.SettleDelay,
		},
	}

	store, err := cache.Open(ctx, cfg.CacheURL, cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential cache: %w", err)
	}
	c.Store = store
	logger.Debug("credential cache opened", "backend", cache.DetectBackend(cfg.CacheURL))

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(collectors.NewGoCollector())
	c.MetricsHandler = observability.MetricsHandler(c.Registry)

	// The gateway reads the credential from the session service, which in
	// turn talks to the backend through the gateway.
	var session *identityApp.Service
	c.Gateway = gateway.New(
		gateway.Config{
			BaseURL:         cfg.APIURL,
			Timeout:         cfg.APITimeout,
			Rate:            cfg.APIRate,
			Burst:           cfg.APIBurst,
			BreakerFailures: cfg.BreakerFailures,
			BreakerTimeout:  cfg.BreakerTimeout,
		},
		gateway.CredentialFunc(func() string {
			if session == nil {
				return ""
			}
			return session.Credential()
		}),
		gateway.WithMetrics(observability.NewPrometheusMetrics(c.Registry)),
		gateway.WithLogger(logger.With("component", "gateway")),
	)

	session = identityApp.NewService(c.Gateway, store, homeNavigator{logger: logger}, logger.With("component", "session"))
	c.SessionService = session

	if err := session.Restore(ctx); err != nil {
		logger.Warn("could not restore cached session", "error", err)
	}

	c.HistoryService = readingApp.NewHistory(c.Gateway, cfg.HistoryLimit)
	c.BillingService = billingApp.NewService(c.Gateway, logger.With("component", "billing"))

	if cfg.GoogleEnabled() {
		google, err := identityApp.NewGoogleAuthenticator(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
			"", "",
		)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to configure google sign-in: %w", err)
		}
		c.GoogleAuth = google
	}

	return c, nil
}

// NewWorkflow starts a reading bound to the given prompters.
func (c *Container) NewWorkflow(login readingApp.LoginPrompter, upgrade readingApp.UpgradePrompter) *readingApp.Workflow {
	return readingApp.NewWorkflow(
		c.Gateway,
		c.SessionService,
		login,
		upgrade,
		c.readingConfig,
		readingApp.WithLogger(c.Logger.With("component", "reading")),
	)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			c.Logger.Warn("error closing credential cache", "error", err)
		}
	}
}

// homeNavigator stands in for the home view of a graphical client.
type homeNavigator struct {
	logger *slog.Logger
}

func (n homeNavigator) Home() {
	n.logger.Debug("session changed, back to home")
}
