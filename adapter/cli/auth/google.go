package auth

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/adapter/cli"
)

var googleCode string

var googleCmd = &cobra.Command{
	Use:   "google",
	Short: "Log in with a Google account",
	Long: `Log in with a Google account.

Open the printed URL, approve access and paste the authorization code.

Examples:
  arcana auth google
  arcana auth google --code 4/0Ab...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Session == nil {
			return errNoSession
		}
		if app.Google == nil {
			return errors.New("google sign-in is not configured: set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
		}

		out := cmd.OutOrStdout()
		code := googleCode
		if code == "" {
			state := uuid.New().String()
			fmt.Fprintf(out, "Visit this URL to authorize Arcana:\n%s\n\n", app.Google.AuthURL(state))

			var err error
			code, err = cli.NewPrompter(cmd).Line("Authorization code")
			if err != nil {
				return err
			}
		}
		if code == "" {
			return errors.New("authorization code is required")
		}

		idToken, err := app.Google.Exchange(cmd.Context(), code)
		if err != nil {
			return fmt.Errorf("failed to exchange code: %w", err)
		}
		if err := app.Session.LoginWithGoogle(cmd.Context(), idToken); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		user := app.Session.Current()
		fmt.Fprintf(out, "Logged in as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

func init() {
	googleCmd.Flags().StringVar(&googleCode, "code", "", "authorization code from Google")
}
