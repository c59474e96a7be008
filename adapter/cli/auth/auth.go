// Package auth holds the login and account commands.
package auth

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/adapter/cli"
	identityDomain "github.com/felixgeelhaar/arcana/internal/identity/domain"
)

var errNoSession = errors.New("session service not configured")

// Cmd is the auth command group.
var Cmd = &cobra.Command{
	Use:   "auth",
	Short: "Log in, register and manage your account",
}

func init() {
	Cmd.AddCommand(loginCmd)
	Cmd.AddCommand(googleCmd)
	Cmd.AddCommand(registerCmd)
	Cmd.AddCommand(logoutCmd)
	Cmd.AddCommand(whoamiCmd)
	Cmd.AddCommand(verifyCmd)
	Cmd.AddCommand(refreshCmd)
}

func sessionService() (cli.SessionService, error) {
	app := cli.GetApp()
	if app == nil || app.Session == nil {
		return nil, errNoSession
	}
	return app.Session, nil
}

func printUser(out io.Writer, user *identityDomain.User) {
	if user == nil {
		return
	}
	fmt.Fprintf(out, "Name:     %s\n", user.Name)
	fmt.Fprintf(out, "Email:    %s\n", user.Email)
	verified := "no"
	if user.EmailVerified {
		verified = "yes"
	}
	fmt.Fprintf(out, "Verified: %s\n", verified)
}
