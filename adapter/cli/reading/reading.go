// Package reading holds the commands that run a tarot reading.
package reading

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/adapter/cli"
	readingApp "github.com/felixgeelhaar/arcana/internal/reading/application"
	"github.com/felixgeelhaar/arcana/internal/reading/domain"
)

var (
	errNoReadings = errors.New("reading service not configured")
	errNotReady   = errors.New("reading is not ready to submit: choose five cards and ask a question")
)

// Cmd is the reading command group.
var Cmd = &cobra.Command{
	Use:   "reading",
	Short: "Start or continue a tarot reading",
}

func init() {
	Cmd.AddCommand(newCmd)
	Cmd.AddCommand(resumeCmd)
}

// session bundles the workflow of one command run with its prompters.
type session struct {
	wf      *readingApp.Workflow
	prompt  *cli.Prompter
	login   *loginPrompt
	upgrade *upgradePrompt
	out     io.Writer
	instant bool

	mu    sync.Mutex
	shown int
}

func newSession(cmd *cobra.Command, instant bool) (*session, error) {
	app := cli.GetApp()
	if app == nil || app.NewWorkflow == nil {
		return nil, errNoReadings
	}

	prompt := cli.NewPrompter(cmd)
	s := &session{
		prompt:  prompt,
		login:   &loginPrompt{prompt: prompt, session: app.Session},
		upgrade: &upgradePrompt{out: cmd.OutOrStdout(), billing: app.Billing},
		out:     cmd.OutOrStdout(),
		instant: instant,
	}
	s.wf = app.NewWorkflow(s.login, s.upgrade)
	s.wf.OnChange(s.printRevealed)
	return s, nil
}

func (s *session) close() {
	s.wf.Close()
}

// printRevealed prints cards as the reveal timer uncovers them.
func (s *session) printRevealed(snap readingApp.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shown == 0 && snap.Revealed > 0 {
		fmt.Fprintln(s.out, "\nYour cards:")
	}
	for s.shown < snap.Revealed && s.shown < len(snap.Cards) {
		card := snap.Cards[s.shown]
		fmt.Fprintf(s.out, "  %d. %s (%s)\n", card.Position, card.Name, card.Orientation())
		s.shown++
	}
}

// printf writes under the same lock as the reveal output.
func (s *session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// drive advances the workflow from whatever step it is at until the reading
// is interpreted.
func (s *session) drive(ctx context.Context) error {
	for {
		snap := s.wf.Snapshot()
		switch snap.State {
		case readingApp.StateSelectingCards, readingApp.StateSessionCreated:
			if len(snap.Selected) != domain.MaxSelection {
				if err := s.chooseCards(snap.Catalog); err != nil {
					return err
				}
			}
			if !s.wf.Snapshot().CanSubmit() {
				return errNotReady
			}
			if err := s.submit(ctx); err != nil {
				return err
			}
		case readingApp.StateCardsRevealing:
			if err := s.awaitReveal(ctx); err != nil {
				return err
			}
			s.printf("\nInterpreting...\n")
			if err := s.wf.Interpret(ctx); err != nil {
				return err
			}
		case readingApp.StateInterpreted:
			s.printf("\nInterpretação:\n%s\n", readingApp.DisplayText(snap.Interpretation))
			return nil
		default:
			return readingApp.ErrInvalidState
		}
	}
}

// submit runs one Submit, logging in and replaying when required.
func (s *session) submit(ctx context.Context) error {
	err := s.wf.Submit(ctx)
	if errors.Is(err, readingApp.ErrAuthRequired) {
		if s.login.err != nil {
			return fmt.Errorf("login failed: %w", s.login.err)
		}
		if !s.login.ok {
			return err
		}
		err = s.wf.ResumeAfterLogin(ctx)
	}
	if errors.Is(err, readingApp.ErrQuotaExceeded) && s.upgrade.shown {
		return errQuotaShown
	}
	return err
}

var errQuotaShown = errors.New("quota reached")

func (s *session) awaitReveal(ctx context.Context) error {
	if s.instant {
		s.wf.RevealAll()
		return nil
	}
	select {
	case <-s.wf.RevealDone():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *session) chooseCards(catalog []domain.AvailableCard) error {
	if len(catalog) == 0 {
		return errors.New("no cards available")
	}
	fmt.Fprintf(s.out, "\nChoose %d cards:\n", domain.MaxSelection)
	printCatalog(s.out, catalog)

	for {
		answer, err := s.prompt.Line(fmt.Sprintf("Card numbers (%d, separated by spaces)", domain.MaxSelection))
		if err != nil {
			return err
		}
		ids, err := parseChoice(answer, catalog)
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		s.selectOnly(ids)
		return nil
	}
}

// selectOnly replaces the selection with ids.
func (s *session) selectOnly(ids []string) {
	for _, id := range s.wf.Snapshot().Selected {
		s.wf.Toggle(id)
	}
	for _, id := range ids {
		s.wf.Toggle(id)
	}
}

// parseChoice turns "1 4 7, 9 12" into catalog ids.
func parseChoice(answer string, catalog []domain.AvailableCard) ([]string, error) {
	fields := strings.FieldsFunc(answer, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != domain.MaxSelection {
		return nil, fmt.Errorf("pick exactly %d cards", domain.MaxSelection)
	}
	seen := make(map[int]bool, len(fields))
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(catalog) {
			return nil, fmt.Errorf("%q is not a card number between 1 and %d", f, len(catalog))
		}
		if seen[n] {
			return nil, fmt.Errorf("card %d chosen twice", n)
		}
		seen[n] = true
		ids = append(ids, catalog[n-1].ID)
	}
	return ids, nil
}

func printCatalog(out io.Writer, catalog []domain.AvailableCard) {
	for i, card := range catalog {
		fmt.Fprintf(out, "  %2d. %-28s %s\n", i+1, card.Name, card.Category.Label())
	}
}
