package reading

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/internal/reading/domain"
)

var (
	newTheme    string
	newQuestion string
	newCards    []string
	newInstant  bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new reading",
	Long: `Start a new reading.

Pick a theme, ask your question and choose five cards. The cards are
revealed one by one before the interpretation.

Examples:
  arcana reading new
  arcana reading new --theme "Família" --question "Como melhorar a convivência?"
  arcana reading new --cards c1,c4,c9,c12,c20 --question "..." --instant`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, newInstant)
		if err != nil {
			return err
		}
		defer s.close()

		ctx := cmd.Context()
		if err := s.wf.LoadCatalog(ctx); err != nil {
			return err
		}

		theme, err := chooseTheme(s, newTheme)
		if err != nil {
			return err
		}
		s.wf.SetTheme(theme)

		question := strings.TrimSpace(newQuestion)
		for question == "" {
			if question, err = s.prompt.Line("Your question"); err != nil {
				return err
			}
		}
		s.wf.SetQuestion(question)

		if len(newCards) > 0 {
			s.selectOnly(newCards)
			if got := len(s.wf.Snapshot().Selected); got != domain.MaxSelection {
				return fmt.Errorf("--cards must name %d cards from the catalog, %d matched", domain.MaxSelection, got)
			}
		}

		err = s.drive(ctx)
		if errors.Is(err, errQuotaShown) {
			return nil
		}
		return err
	},
}

func chooseTheme(s *session, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	fmt.Fprintln(s.out, "Themes:")
	defaultIndex := 0
	for i, t := range domain.Themes {
		if t == domain.DefaultTheme {
			defaultIndex = i
		}
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, t)
	}
	answer, err := s.prompt.Line(fmt.Sprintf("Theme [%d]", defaultIndex+1))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return domain.Themes[defaultIndex], nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(domain.Themes) {
		return "", fmt.Errorf("theme must be a number between 1 and %d", len(domain.Themes))
	}
	return domain.Themes[n-1], nil
}

func init() {
	newCmd.Flags().StringVar(&newTheme, "theme", "", "reading theme")
	newCmd.Flags().StringVarP(&newQuestion, "question", "q", "", "your question")
	newCmd.Flags().StringSliceVar(&newCards, "cards", nil, "ids of the five cards to draw")
	newCmd.Flags().BoolVar(&newInstant, "instant", false, "reveal all cards at once")
}
