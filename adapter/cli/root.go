package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/pkg/observability"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger

	bootstrap BootstrapFunc
	cleanup   func()
)

// annotationNoApp marks commands that run without services.
const annotationNoApp = "arcana/no-app"

// Options are the global flags handed to the bootstrap function.
type Options struct {
	ConfigFile string
	Verbose    bool
}

// BootstrapFunc builds the App on first use. The returned func releases it.
type BootstrapFunc func(ctx context.Context, opts Options) (*App, func(), error)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "arcana",
	Short: "Arcana - tarot readings from the terminal",
	Long: `Arcana is a command-line client for the tarot reading service.

	Pick five cards, ask a question and receive an interpretation.
	Past readings, plans and subscriptions are available too.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		ctx = observability.WithCorrelationID(ctx, info.correlationID.String())
		cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))

		if currentApp == nil && bootstrap != nil && cmd.Annotations[annotationNoApp] == "" {
			app, release, err := bootstrap(cmd.Context(), Options{ConfigFile: cfgFile, Verbose: verbose})
			if err != nil {
				return err
			}
			SetApp(app)
			cleanup = release
		}

		if logger == nil {
			logger = slog.Default()
		}
		logger.DebugContext(cmd.Context(), "command start",
			"command", cmd.CommandPath(),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.DebugContext(cmd.Context(), "command end",
			"command", cmd.CommandPath(),
			observability.DurationKey, time.Since(info.startedAt).Milliseconds(),
		)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if cleanup != nil {
		cleanup()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetBootstrap registers the function that builds the App before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}
