package auth

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Verify your email with the token from the verification link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := sessionService()
		if err != nil {
			return err
		}

		message, err := session.VerifyEmail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		if message == "" {
			message = "Email verified."
		}
		fmt.Fprintln(cmd.OutOrStdout(), message)
		return nil
	},
}
