package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/adapter/cli"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := sessionService()
		if err != nil {
			return err
		}

		prompt := cli.NewPrompter(cmd)
		email := loginEmail
		if email == "" {
			if email, err = prompt.Line("Email"); err != nil {
				return err
			}
		}
		password := loginPassword
		if password == "" {
			if password, err = prompt.Password("Password"); err != nil {
				return err
			}
		}
		if email == "" || password == "" {
			return errors.New("email and password are required")
		}

		if err := session.Login(cmd.Context(), email, password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		user := session.Current()
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", user.Name, user.Email)
		if !user.EmailVerified {
			fmt.Fprintln(cmd.OutOrStdout(), "Your email is not verified yet. Run 'arcana auth verify <token>' with the token from your inbox.")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when omitted)")
}
