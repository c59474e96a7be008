package auth

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := sessionService()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !session.IsAuthenticated() {
			fmt.Fprintln(out, "Not logged in. Run 'arcana auth login'.")
			return nil
		}

		printUser(out, session.Current())
		if exp, ok := session.CredentialExpiry(); ok {
			fmt.Fprintf(out, "Expires:  %s\n", exp.Local().Format(time.RFC1123))
		}
		return nil
	},
}
