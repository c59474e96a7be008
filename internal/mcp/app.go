package mcp

import (
	"github.com/felixgeelhaar/arcana/adapter/cli"
	"github.com/felixgeelhaar/arcana/internal/app"
)

// NewCLIApp creates a CLI application instance backed by the provided container.
func NewCLIApp(container *app.Container) *cli.App {
	cliApp := cli.NewApp(
		container.Config,
		container.SessionService,
		container.HistoryService,
		container.BillingService,
		container.NewWorkflow,
	)

	if container.Gateway != nil {
		cliApp.SetHealthCheck(container.Gateway.Ping)
	}
	if container.GoogleAuth != nil {
		cliApp.SetGoogleAuth(container.GoogleAuth)
	}
	if container.MetricsHandler != nil {
		cliApp.SetMetricsHandler(container.MetricsHandler)
	}

	return cliApp
}
