package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/adapter/cli"
	mcpinternal "github.com/felixgeelhaar/arcana/internal/mcp"
)

var (
	serveAddr        string
	serveMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start an HTTP MCP server exposing readings, history and plans as tools.

Tools act as the user logged in on this machine. Set MCP_AUTH_TOKEN to
require a bearer token from clients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Config == nil {
			return errors.New("arcana is not initialised")
		}

		cfg := *app.Config
		if serveAddr != "" {
			cfg.MCPAddr = serveAddr
		}
		if serveMetricsAddr != "" {
			cfg.MetricsAddr = serveMetricsAddr
		}

		logger := newServerLogger(cmd.ErrOrStderr(), cfg.IsDevelopment())

		err := mcpinternal.Serve(cmd.Context(), &cfg, app, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from MCP_ADDR)")
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
}

func newServerLogger(out io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
}
