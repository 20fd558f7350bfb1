package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/parow/mob/internal/session"
)

var (
	startBranch     string
	startTurn       time.Duration
	startBreak      time.Duration
	startLunch      time.Duration
	startLunchEvery int
)

var startCmd = &cobra.Command{
	Use:   "start <participant>...",
	Short: "Start a mob session with the given participants",
	Long: `Starts a session on a WIP branch derived from the base branch. The
first participant drives first; everyone else rotates in order. Flags
override the configured durations for this session only.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVar(&startBranch, "branch", "", "Base branch to mob on (default from config)")
	startCmd.Flags().DurationVar(&startTurn, "turn", 0, "Turn duration (default from config)")
	startCmd.Flags().DurationVar(&startBreak, "break", 0, "Break duration (default from config)")
	startCmd.Flags().DurationVar(&startLunch, "lunch", 0, "Lunch duration (default from config)")
	startCmd.Flags().IntVar(&startLunchEvery, "lunch-every", -1, "Turns between lunches, 0 disables (default from config)")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	existing, err := a.store.Load()
	if err != nil {
		return err
	}
	if existing.Active() {
		return fmt.Errorf("a session is already running on %s, run 'mob status' or 'mob reset'", existing.WIPBranch)
	}

	base := a.cfg.BaseBranch
	if startBranch != "" {
		base = startBranch
	}
	wip := a.cfg.WIPBranch(base)

	s := session.New(args, base, wip, a.cfg.Remote, time.Now())
	s.TurnDuration = session.Duration(a.cfg.TurnDuration)
	s.BreakDuration = session.Duration(a.cfg.BreakDuration)
	s.LunchDuration = session.Duration(a.cfg.LunchDuration)
	s.LunchEvery = a.cfg.LunchEvery
	if startTurn > 0 {
		s.TurnDuration = session.Duration(startTurn)
	}
	if startBreak > 0 {
		s.BreakDuration = session.Duration(startBreak)
	}
	if startLunch > 0 {
		s.LunchDuration = session.Duration(startLunch)
	}
	if startLunchEvery >= 0 {
		s.LunchEvery = startLunchEvery
	}

	if err := a.proto.StartTurn(ctx, s); err != nil {
		return err
	}
	if err := a.store.Save(s); err != nil {
		return err
	}

	a.logger.Info("session started", "base", base, "wip", wip, "participants", len(args))
	fmt.Printf("🚗 %s is driving on %s (turn %s)\n", s.Driver(), wip, s.TurnDuration.Std())
	return nil
}
