package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/arcana/adapter/cli"
	cliAuth "github.com/felixgeelhaar/arcana/adapter/cli/auth"
	cliBilling "github.com/felixgeelhaar/arcana/adapter/cli/billing"
	"github.com/felixgeelhaar/arcana/adapter/cli/mcp"
	"github.com/felixgeelhaar/arcana/adapter/cli/reading"
	"github.com/felixgeelhaar/arcana/adapter/cli/sessions"
	"github.com/felixgeelhaar/arcana/internal/app"
	mcpinternal "github.com/felixgeelhaar/arcana/internal/mcp"
	"github.com/felixgeelhaar/arcana/pkg/config"
	"github.com/felixgeelhaar/arcana/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mcpinternal.Version = cli.Version

	cli.SetBootstrap(func(ctx context.Context, opts cli.Options) (*cli.App, func(), error) {
		cfg, err := config.LoadFile(opts.ConfigFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		if opts.Verbose {
			cfg.LogLevel = "debug"
		}

		logger := observability.LoggerFor(cfg.LogLevel, cfg.LogFormat, cli.Version, os.Stderr)
		cli.SetLogger(logger)

		container, err := app.NewContainer(ctx, cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize: %w", err)
		}
		return mcpinternal.NewCLIApp(container), container.Close, nil
	})

	cli.AddCommand(cliAuth.Cmd)
	cli.AddCommand(reading.Cmd)
	cli.AddCommand(reading.CardsCmd)
	cli.AddCommand(sessions.Cmd)
	cli.AddCommand(cliBilling.Cmd)
	cli.AddCommand(mcp.Cmd)

	cli.Execute(ctx)
}
