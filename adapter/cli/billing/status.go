package billing

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show subscription status",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := billingService()
		if err != nil {
			return err
		}

		subscription, err := svc.Current(cmd.Context())
		if err != nil {
			return err
		}
		if subscription == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No subscription found.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Subscription: %s (%s)\n", subscription.PlanID, subscription.Status.Label())
		fmt.Fprintf(cmd.OutOrStdout(), "Started: %s\n", subscription.StartDate.Local().Format(time.RFC1123))
		if subscription.EndDate != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Ends: %s\n", subscription.EndDate.Local().Format(time.RFC1123))
		}
		if subscription.CancelledAt != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled: %s\n", subscription.CancelledAt.Local().Format(time.RFC1123))
		}

		return nil
	},
}
