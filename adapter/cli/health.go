package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		if app.Ping == nil {
			return errors.New("health check not configured")
		}
		out := cmd.OutOrStdout()

		target := ""
		if app.Config != nil {
			target = " " + app.Config.APIURL
		}
		start := time.Now()
		if err := app.Ping(cmd.Context()); err != nil {
			fmt.Fprintf(out, "backend:%s unreachable\n", target)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintf(out, "backend:%s ok (%dms)\n", target, time.Since(start).Milliseconds())

		if app.Session != nil && app.Session.IsAuthenticated() {
			if user := app.Session.Current(); user != nil {
				fmt.Fprintf(out, "session: %s\n", user.Email)
				return nil
			}
		}
		fmt.Fprintln(out, "session: anonymous")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
