package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/parow/mob/internal/schedule"
	"github.com/parow/mob/internal/session"
)

var breakCmd = &cobra.Command{
	Use:   "break",
	Short: "Pause for a break now, regardless of the timer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPause(cmd, session.PhaseBreak)
	},
}

var lunchCmd = &cobra.Command{
	Use:   "lunch",
	Short: "Pause for lunch now, regardless of the timer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPause(cmd, session.PhaseLunch)
	},
}

func init() {
	rootCmd.AddCommand(breakCmd)
	rootCmd.AddCommand(lunchCmd)
}

func runPause(cmd *cobra.Command, phase session.Phase) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	s, err := a.loadActive()
	if err != nil {
		return err
	}
	if s.Phase == phase {
		return fmt.Errorf("already on %s", phase)
	}

	now := time.Now()

	// Interrupting a turn still hands the work off, so nothing sits
	// uncommitted on one machine over the pause.
	if s.Phase == session.PhaseDriving {
		if err := a.proto.Handoff(ctx, s); err != nil {
			return err
		}
		s.Turn++
	}

	s, err = schedule.Override(s, phase, now)
	if err != nil {
		return err
	}
	if err := a.store.Save(s); err != nil {
		return err
	}

	fmt.Printf("%s %s until %s, run 'mob next' to resume\n", pauseIcon(phase), phase, pauseEnd(s, now))
	return nil
}
