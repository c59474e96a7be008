package reading

import (
	"context"
	"fmt"
	"io"

	"github.com/felixgeelhaar/arcana/adapter/cli"
	identityApp "github.com/felixgeelhaar/arcana/internal/identity/application"
)

// loginPrompt asks for credentials on the terminal when a reading needs a
// login. The reading stays where it is afterwards.
type loginPrompt struct {
	prompt  *cli.Prompter
	session cli.SessionService
	ok      bool
	err     error
}

func (l *loginPrompt) PromptLogin(ctx context.Context) {
	l.ok, l.err = false, nil
	if l.session == nil {
		return
	}
	fmt.Fprintln(l.prompt.Out(), "\nLog in to start your reading.")

	email, err := l.prompt.Line("Email")
	if err != nil {
		l.err = err
		return
	}
	password, err := l.prompt.Password("Password")
	if err != nil {
		l.err = err
		return
	}
	if err := l.session.Login(ctx, email, password, identityApp.WithoutRedirect()); err != nil {
		l.err = err
		return
	}
	l.ok = true
}

// upgradePrompt replaces the quota error with the list of plans.
type upgradePrompt struct {
	out     io.Writer
	billing cli.BillingService
	shown   bool
}

func (u *upgradePrompt) PromptUpgrade(ctx context.Context, cause error) {
	u.shown = true
	fmt.Fprintln(u.out, "\nVocê atingiu o limite diário de leituras do seu plano.")
	if u.billing != nil {
		if overview, err := u.billing.Overview(ctx); err == nil {
			fmt.Fprintln(u.out)
			cli.PrintPlans(u.out, overview)
		}
	}
	fmt.Fprintln(u.out, "\nRun 'arcana plans subscribe <plan-id>' to upgrade.")
}
