package billing

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/adapter/cli"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List plans; * marks your current plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := billingService()
		if err != nil {
			return err
		}
		overview, err := svc.Overview(cmd.Context())
		if err != nil {
			return err
		}
		cli.PrintPlans(cmd.OutOrStdout(), overview)
		return nil
	},
}
