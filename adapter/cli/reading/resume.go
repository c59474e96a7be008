package reading

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resumeInstant bool

var resumeCmd = &cobra.Command{
	Use:   "resume <session-id>",
	Short: "Continue a reading from where it stopped",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, resumeInstant)
		if err != nil {
			return err
		}
		defer s.close()

		ctx := cmd.Context()
		if err := s.wf.LoadCatalog(ctx); err != nil {
			return err
		}
		if err := s.wf.Resume(ctx, args[0]); err != nil {
			return err
		}

		snap := s.wf.Snapshot()
		fmt.Fprintf(s.out, "Tema: %s\n", snap.Theme)
		if snap.Question != "" {
			fmt.Fprintf(s.out, "Pergunta: %s\n", snap.Question)
		}

		err = s.drive(ctx)
		if errors.Is(err, errQuotaShown) {
			return nil
		}
		return err
	},
}

func init() {
	resumeCmd.Flags().BoolVar(&resumeInstant, "instant", false, "reveal all cards at once")
}
