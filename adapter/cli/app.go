package cli

import (
	"context"
	"net/http"
	"time"

	billingApp "github.com/felixgeelhaar/arcana/internal/billing/application"
	billingDomain "github.com/felixgeelhaar/arcana/internal/billing/domain"
	identityApp "github.com/felixgeelhaar/arcana/internal/identity/application"
	identityDomain "github.com/felixgeelhaar/arcana/internal/identity/domain"
	readingApp "github.com/felixgeelhaar/arcana/internal/reading/application"
	readingDomain "github.com/felixgeelhaar/arcana/internal/reading/domain"
	"github.com/felixgeelhaar/arcana/pkg/config"
)

// SessionService is the login state the commands act on.
type SessionService interface {
	Login(ctx context.Context, email, password string, opts ...identityApp.LoginOption) error
	LoginWithGoogle(ctx context.Context, idToken string, opts ...identityApp.LoginOption) error
	Register(ctx context.Context, form identityDomain.Registration, opts ...identityApp.LoginOption) error
	Logout(ctx context.Context) error
	VerifyEmail(ctx context.Context, token string) (string, error)
	Refresh(ctx context.Context) (*identityDomain.User, error)
	Current() *identityDomain.User
	IsAuthenticated() bool
	CredentialExpiry() (time.Time, bool)
}

// GoogleAuth runs the Google authorization-code exchange.
type GoogleAuth interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
}

// HistoryService lists past readings.
type HistoryService interface {
	List(ctx context.Context, page int) (*readingApp.HistoryPage, error)
	Get(ctx context.Context, id string) (*readingDomain.Session, readingApp.HistoryEntry, error)
}

// BillingService lists plans and subscribes.
type BillingService interface {
	Overview(ctx context.Context) (*billingApp.Overview, error)
	Current(ctx context.Context) (*billingDomain.Subscription, error)
	SubscribeByID(ctx context.Context, planID string, opts billingApp.SubscribeOptions) (*billingApp.SubscribeOutcome, error)
}

// WorkflowFactory builds a reading workflow bound to the given prompters.
type WorkflowFactory func(login readingApp.LoginPrompter, upgrade readingApp.UpgradePrompter) *readingApp.Workflow

// App holds the CLI application dependencies.
type App struct {
	Config *config.Config

	Session SessionService
	Google  GoogleAuth
	History HistoryService
	Billing BillingService

	// NewWorkflow starts a fresh reading.
	NewWorkflow WorkflowFactory

	// Metrics serves the Prometheus registry, if any.
	Metrics http.Handler

	// Ping reports whether the backend is reachable.
	Ping func(ctx context.Context) error
}

// NewApp creates a new CLI application with the provided services.
func NewApp(
	cfg *config.Config,
	session SessionService,
	history HistoryService,
	billing BillingService,
	workflows WorkflowFactory,
) *App {
	return &App{
		Config:      cfg,
		Session:     session,
		History:     history,
		Billing:     billing,
		NewWorkflow: workflows,
	}
}

// SetGoogleAuth enables Google sign-in.
func (a *App) SetGoogleAuth(g GoogleAuth) {
	a.Google = g
}

// SetMetricsHandler exposes the metrics registry to the MCP server.
func (a *App) SetMetricsHandler(h http.Handler) {
	a.Metrics = h
}

// SetHealthCheck sets the backend reachability probe.
func (a *App) SetHealthCheck(ping func(ctx context.Context) error) {
	a.Ping = ping
}

var currentApp *App

// SetApp sets the current CLI application.
func SetApp(a *App) {
	currentApp = a
}

// GetApp returns the current CLI application.
func GetApp() *App {
	return currentApp
}
