// Package sessions lists past readings.
package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/adapter/cli"
	readingApp "github.com/felixgeelhaar/arcana/internal/reading/application"
)

var errNoHistory = errors.New("history service not configured")

// Cmd is the sessions command group.
var Cmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse your past readings",
}

var listPage int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List readings, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.History == nil {
			return errNoHistory
		}

		page, err := app.History.List(cmd.Context(), listPage)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(page.Entries) == 0 {
			fmt.Fprintln(out, "No readings yet. Start one with 'arcana reading new'.")
			return nil
		}
		for _, e := range page.Entries {
			fmt.Fprintf(out, "%s  %s  %-24s %s\n",
				e.ID,
				e.CreatedAt.Local().Format("02/01/2006 15:04"),
				e.Theme,
				e.StatusLabel,
			)
			if e.Question != "" {
				fmt.Fprintf(out, "    %s\n", e.Question)
			}
		}
		fmt.Fprintf(out, "\nPage %d of %d (%d readings)\n", page.Page, max(page.TotalPages, 1), page.Total)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one reading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.History == nil {
			return errNoHistory
		}

		session, entry, err := app.History.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Tema: %s\n", entry.Theme)
		if entry.Question != "" {
			fmt.Fprintf(out, "Pergunta: %s\n", entry.Question)
		}
		fmt.Fprintf(out, "Status: %s\n", entry.StatusLabel)
		fmt.Fprintf(out, "Created: %s\n", entry.CreatedAt.Local().Format(time.RFC1123))

		if len(session.Cards) > 0 {
			fmt.Fprintln(out, "\nCards:")
			for _, c := range session.Cards {
				fmt.Fprintf(out, "  %d. %s (%s)\n", c.Position, c.Name, c.Orientation())
			}
		}
		if text := readingApp.DisplayText(entry.Interpretation); text != "" {
			fmt.Fprintf(out, "\nInterpretação:\n%s\n", text)
		}
		if entry.Resumable {
			fmt.Fprintf(out, "\nContinue with 'arcana reading resume %s'.\n", entry.ID)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
}
