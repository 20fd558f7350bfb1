package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/parow/mob/internal/prompt"
	"github.com/parow/mob/internal/schedule"
	"github.com/parow/mob/internal/session"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Hand off to the next driver (or end the current break)",
	Long: `While driving, commits everything on the WIP branch, pushes it and
rotates to the next driver. During a break or lunch, returns to driving.
A due break or lunch is offered on the way; declining skips straight to
the next driver.`,
	Args: cobra.NoArgs,
	RunE: runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	s, err := a.loadActive()
	if err != nil {
		return err
	}

	now := time.Now()
	if s.Phase == session.PhaseDriving {
		if err := a.guardDriver(s); err != nil {
			return err
		}
		return a.finishTurn(ctx, s, now)
	}
	return a.resumeDriving(ctx, s, now)
}

// guardDriver stops someone else handing off the driver's turn by
// accident. Only active when the config names who this machine is.
func (a *app) guardDriver(s session.Session) error {
	if a.cfg.Name == "" || a.cfg.Name == s.Driver() {
		return nil
	}
	ok, err := a.confirm.Confirm(
		fmt.Sprintf("The current driver is %s, not you. Hand off their turn anyway?", s.Driver()), false)
	if err != nil {
		return err
	}
	if !ok {
		return prompt.ErrCancelled
	}
	return nil
}

// finishTurn ends the current driving turn: commit and push, then enter
// whatever comes next (break, lunch, or the next driver directly).
func (a *app) finishTurn(ctx context.Context, s session.Session, now time.Time) error {
	st := schedule.ComputeStatus(s, now)
	if !st.Overdue {
		remaining := st.Remaining.Round(time.Second)
		if a.cfg.Strict {
			return fmt.Errorf("turn has %s remaining (strict mode)", remaining)
		}
		ok, err := a.confirm.Confirm(fmt.Sprintf("Turn has %s remaining. Hand off anyway?", remaining), false)
		if err != nil {
			return err
		}
		if !ok {
			return prompt.ErrCancelled
		}
	}

	if err := a.proto.Handoff(ctx, s); err != nil {
		return err
	}
	s.Turn++

	// A pause is an offer, not an order. Ask before committing to the
	// transition: a skipped lunch must come up again next turn, so the
	// lunch counter only resets once the pause is accepted.
	var err error
	if next := schedule.NextPhase(s); next == session.PhaseBreak || next == session.PhaseLunch {
		accepted, err := a.offerPause(next, s)
		if err != nil {
			return err
		}
		if accepted {
			if s, err = schedule.Advance(s, now); err != nil {
				return err
			}
			if err := a.store.Save(s); err != nil {
				return err
			}
			fmt.Printf("%s %s until %s\n", pauseIcon(s.Phase), s.Phase, pauseEnd(s, now))
			return nil
		}
		if s, err = schedule.SkipPause(s, now); err != nil {
			return err
		}
		return a.beginTurn(ctx, s)
	}

	if s, err = schedule.Advance(s, now); err != nil {
		return err
	}
	return a.beginTurn(ctx, s)
}

// resumeDriving ends a break or lunch and starts the next driver's turn.
func (a *app) resumeDriving(ctx context.Context, s session.Session, now time.Time) error {
	s, err := schedule.Advance(s, now)
	if err != nil {
		return err
	}
	return a.beginTurn(ctx, s)
}

func (a *app) beginTurn(ctx context.Context, s session.Session) error {
	if err := a.proto.StartTurn(ctx, s); err != nil {
		return err
	}
	if err := a.store.Save(s); err != nil {
		return err
	}
	a.logger.Info("turn started", "driver", s.Driver(), "turn", s.Turn+1)
	fmt.Printf("🚗 %s is driving (turn %s)\n", s.Driver(), s.TurnDuration.Std())
	return nil
}

func (a *app) offerPause(next session.Phase, s session.Session) (bool, error) {
	switch next {
	case session.PhaseLunch:
		return a.confirm.Confirm(fmt.Sprintf("Time for lunch (%s)?", s.LunchDuration.Std()), true)
	default:
		return a.confirm.Confirm(fmt.Sprintf("Take a break (%s)?", s.BreakDuration.Std()), true)
	}
}

func pauseIcon(p session.Phase) string {
	if p == session.PhaseLunch {
		return "🍜"
	}
	return "☕"
}

func pauseEnd(s session.Session, now time.Time) string {
	return now.Add(schedule.PhaseDuration(s)).Local().Format("15:04")
}
