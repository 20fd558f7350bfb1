package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parow/mob/internal/prompt"
	"github.com/parow/mob/internal/session"
)

var doneCmd = &cobra.Command{
	Use:   "done",
	Short: "Finish the session and squash the WIP branch into the base branch",
	Long: `Commits any remaining work, squashes the whole WIP branch into a
single commit on the base branch, pushes it, and deletes the WIP branch
locally and on the remote. On a merge conflict nothing is lost: the WIP
branch stays put so it can be merged by hand.`,
	Args: cobra.NoArgs,
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	s, err := a.loadActive()
	if err != nil {
		return err
	}

	ok, err := a.confirm.Confirm(
		fmt.Sprintf("Finish the session and merge %s into %s?", s.WIPBranch, s.BaseBranch), true)
	if err != nil {
		return err
	}
	if !ok {
		return prompt.ErrCancelled
	}

	// Any uncommitted work on the WIP branch rides along as a final turn.
	if s.Phase == session.PhaseDriving {
		if err := a.proto.Handoff(ctx, s); err != nil {
			return err
		}
		s.Turn++
	}

	if err := a.proto.FinishSession(ctx, s); err != nil {
		return err
	}
	if err := a.store.Reset(); err != nil {
		return err
	}

	a.logger.Info("session finished", "turns", s.Turn, "base", s.BaseBranch)
	fmt.Printf("🏁 merged %s into %s after %d turns\n", s.WIPBranch, s.BaseBranch, s.Turn)
	return nil
}
