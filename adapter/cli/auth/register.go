package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/adapter/cli"
	identityDomain "github.com/felixgeelhaar/arcana/internal/identity/domain"
)

var (
	registerName  string
	registerEmail string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := sessionService()
		if err != nil {
			return err
		}

		prompt := cli.NewPrompter(cmd)
		form := identityDomain.Registration{Name: registerName, Email: registerEmail}
		if form.Name == "" {
			if form.Name, err = prompt.Line("Name"); err != nil {
				return err
			}
		}
		if form.Email == "" {
			if form.Email, err = prompt.Line("Email"); err != nil {
				return err
			}
		}
		if form.Password, err = prompt.Password("Password"); err != nil {
			return err
		}
		if form.ConfirmPassword, err = prompt.Password("Confirm password"); err != nil {
			return err
		}

		if err := session.Register(cmd.Context(), form); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Account created for %s.\n", form.Email)
		fmt.Fprintln(out, "Check your inbox for the verification link.")
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
}
