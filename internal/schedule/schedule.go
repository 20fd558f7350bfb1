// Package schedule computes phase timing and transitions as pure functions
// of the session record and the wall clock. It never mutates persisted
// state on its own; transitions fire only when a command asks for them.
package schedule

import (
	"fmt"
	"time"

	"github.com/parow/mob/internal/rotation"
	"github.com/parow/mob/internal/session"
)

// Status describes where the active phase stands relative to now.
type Status struct {
	Elapsed   time.Duration
	Remaining time.Duration
	Overdue   bool
}

// PhaseDuration returns the configured duration of the session's current phase.
func PhaseDuration(s session.Session) time.Duration {
	switch s.Phase {
	case session.PhaseDriving:
		return s.TurnDuration.Std()
	case session.PhaseBreak:
		return s.BreakDuration.Std()
	case session.PhaseLunch:
		return s.LunchDuration.Std()
	default:
		return 0
	}
}

// ComputeStatus is pure: identical inputs yield identical output.
func ComputeStatus(s session.Session, now time.Time) Status {
	duration := PhaseDuration(s)
	elapsed := now.Sub(s.PhaseStartedAt)
	remaining := duration - elapsed
	return Status{
		Elapsed:   elapsed,
		Remaining: remaining,
		Overdue:   remaining <= 0,
	}
}

// NextPhase reports which phase a due transition would enter. It does not
// apply the transition.
func NextPhase(s session.Session) session.Phase {
	switch s.Phase {
	case session.PhaseDriving:
		if s.LunchEvery > 0 && s.TurnsSinceLunch+1 >= s.LunchEvery {
			return session.PhaseLunch
		}
		return session.PhaseBreak
	case session.PhaseBreak, session.PhaseLunch:
		return session.PhaseDriving
	default:
		return s.Phase
	}
}

// Advance applies one phase transition and returns the updated session.
// Leaving Driving counts a completed turn; entering Lunch resets the
// counter; entering Driving rotates the driver.
//
// The new phase start is clamped so it never precedes the previous one,
// even if the local clock stepped backwards.
func Advance(s session.Session, now time.Time) (session.Session, error) {
	if !s.Active() {
		return s, fmt.Errorf("no active session to advance")
	}

	next := NextPhase(s)
	switch next {
	case session.PhaseLunch:
		s.TurnsSinceLunch = 0
	case session.PhaseBreak:
		s.TurnsSinceLunch++
	case session.PhaseDriving:
		idx, err := rotation.Next(s.Participants, s.DriverIndex)
		if err != nil {
			return s, err
		}
		s.DriverIndex = idx
	}

	started := now.UTC().Truncate(time.Second)
	if started.Before(s.PhaseStartedAt) {
		started = s.PhaseStartedAt
	}
	s.Phase = next
	s.PhaseStartedAt = started
	return s, nil
}

// SkipPause ends a driving turn without taking the offered break or
// lunch: the turn still counts and the driver still rotates, but the
// lunch counter is not reset, so a skipped lunch comes up again when the
// next turn ends.
func SkipPause(s session.Session, now time.Time) (session.Session, error) {
	if s.Phase != session.PhaseDriving {
		return s, fmt.Errorf("no driving turn to skip the pause of")
	}
	s.TurnsSinceLunch++
	idx, err := rotation.Next(s.Participants, s.DriverIndex)
	if err != nil {
		return s, err
	}
	s.DriverIndex = idx

	started := now.UTC().Truncate(time.Second)
	if started.Before(s.PhaseStartedAt) {
		started = s.PhaseStartedAt
	}
	s.PhaseStartedAt = started
	return s, nil
}

// Override forces the session into a break or lunch regardless of the
// timer, for the manual `mob break` / `mob lunch` commands. A turn ends
// either way, so the lunch counter advances the same as a due transition.
func Override(s session.Session, phase session.Phase, now time.Time) (session.Session, error) {
	if !s.Active() {
		return s, fmt.Errorf("no active session")
	}
	switch phase {
	case session.PhaseBreak:
		s.TurnsSinceLunch++
	case session.PhaseLunch:
		s.TurnsSinceLunch = 0
	default:
		return s, fmt.Errorf("cannot override into phase %q", phase)
	}

	started := now.UTC().Truncate(time.Second)
	if started.Before(s.PhaseStartedAt) {
		started = s.PhaseStartedAt
	}
	s.Phase = phase
	s.PhaseStartedAt = started
	return s, nil
}
