package auth

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload your profile from the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := sessionService()
		if err != nil {
			return err
		}

		user, err := session.Refresh(cmd.Context())
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		printUser(cmd.OutOrStdout(), user)
		return nil
	},
}
