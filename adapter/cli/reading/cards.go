package reading

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/adapter/cli"
)

// CardsCmd lists the selectable cards.
var CardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List the cards you can choose from",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.NewWorkflow == nil {
			return errNoReadings
		}
		wf := app.NewWorkflow(nil, nil)
		defer wf.Close()

		if err := wf.LoadCatalog(cmd.Context()); err != nil {
			return err
		}
		catalog := wf.Snapshot().Catalog
		if len(catalog) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No cards available.")
			return nil
		}
		for _, card := range catalog {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-28s %s\n", card.ID, card.Name, card.Category.Label())
		}
		return nil
	},
}
