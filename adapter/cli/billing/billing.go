// Package billing holds the plan and subscription commands.
package billing

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/adapter/cli"
)

var errNoBilling = errors.New("billing service not configured")

// Cmd is the plans command group.
var Cmd = &cobra.Command{
	Use:   "plans",
	Short: "List plans and manage your subscription",
	Long:  `List the available plans, subscribe to one and check your subscription.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(subscribeCmd)
	Cmd.AddCommand(statusCmd)
}

func billingService() (cli.BillingService, error) {
	app := cli.GetApp()
	if app == nil || app.Billing == nil {
		return nil, errNoBilling
	}
	return app.Billing, nil
}
