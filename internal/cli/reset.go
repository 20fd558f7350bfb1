package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parow/mob/internal/prompt"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Abandon the session and delete the WIP branch",
	Long: `Throws the session away: deletes the WIP branch locally and on the
remote and removes the state file. Work already squashed into the base
branch is unaffected; everything still on the WIP branch is lost.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	s, err := a.store.Load()
	if err != nil {
		return err
	}
	if !s.Active() {
		// Still clear the state file so a corrupt-but-parseable record
		// cannot wedge the tool.
		return a.store.Reset()
	}

	ok, err := a.confirm.Confirm(
		fmt.Sprintf("Discard the session and delete %s? Unmerged work will be lost.", s.WIPBranch), false)
	if err != nil {
		return err
	}
	if !ok {
		return prompt.ErrCancelled
	}

	if err := a.proto.Abort(ctx, s); err != nil {
		return err
	}
	if err := a.store.Reset(); err != nil {
		return err
	}

	a.logger.Info("session discarded", "wip", s.WIPBranch)
	fmt.Printf("✋ session discarded, %s deleted\n", s.WIPBranch)
	return nil
}
