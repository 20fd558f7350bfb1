package schedule

import (
	"testing"
	"time"

	"github.com/parow/mob/internal/session"
)

func driving(t *testing.T, participants []string) session.Session {
	t.Helper()
	s := session.New(participants, "main", "mob/main", "origin", time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC))
	s.TurnDuration = session.Duration(25 * time.Minute)
	s.BreakDuration = session.Duration(5 * time.Minute)
	s.LunchDuration = session.Duration(time.Hour)
	s.LunchEvery = 6
	return s
}

func TestComputeStatus(t *testing.T) {
	s := driving(t, []string{"A", "B"})

	now := s.PhaseStartedAt.Add(10 * time.Minute)
	st := ComputeStatus(s, now)
	if st.Elapsed != 10*time.Minute {
		t.Errorf("Elapsed = %s, want 10m", st.Elapsed)
	}
	if st.Remaining != 15*time.Minute {
		t.Errorf("Remaining = %s, want 15m", st.Remaining)
	}
	if st.Overdue {
		t.Error("turn should not be overdue at 10m of 25m")
	}
}

func TestComputeStatusOverdue(t *testing.T) {
	s := driving(t, []string{"A", "B"})

	now := s.PhaseStartedAt.Add(26 * time.Minute)
	st := ComputeStatus(s, now)
	if !st.Overdue {
		t.Error("turn should be overdue at 26m of 25m")
	}
	if st.Remaining != -time.Minute {
		t.Errorf("Remaining = %s, want -1m", st.Remaining)
	}
}

func TestComputeStatusIdempotent(t *testing.T) {
	s := driving(t, []string{"A", "B"})
	now := s.PhaseStartedAt.Add(3 * time.Minute)

	if ComputeStatus(s, now) != ComputeStatus(s, now) {
		t.Error("identical inputs produced different status")
	}
}

func TestAdvanceDrivingToBreak(t *testing.T) {
	s := driving(t, []string{"A", "B"})
	now := s.PhaseStartedAt.Add(26 * time.Minute)

	got, err := Advance(s, now)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got.Phase != session.PhaseBreak {
		t.Errorf("phase = %s, want break", got.Phase)
	}
	if got.TurnsSinceLunch != 1 {
		t.Errorf("TurnsSinceLunch = %d, want 1", got.TurnsSinceLunch)
	}
	if got.Driver() != "A" {
		t.Errorf("driver changed during break transition: %s", got.Driver())
	}
}

func TestAdvanceBreakToDrivingRotatesDriver(t *testing.T) {
	s := driving(t, []string{"A", "B"})
	s.Phase = session.PhaseBreak
	now := s.PhaseStartedAt.Add(6 * time.Minute)

	got, err := Advance(s, now)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got.Phase != session.PhaseDriving {
		t.Errorf("phase = %s, want driving", got.Phase)
	}
	if got.Driver() != "B" {
		t.Errorf("driver = %s, want B", got.Driver())
	}
}

func TestAdvanceLunchThreshold(t *testing.T) {
	s := driving(t, []string{"A", "B"})
	s.LunchEvery = 3
	s.TurnsSinceLunch = 2

	got, err := Advance(s, s.PhaseStartedAt.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got.Phase != session.PhaseLunch {
		t.Errorf("phase = %s, want lunch at threshold", got.Phase)
	}
	if got.TurnsSinceLunch != 0 {
		t.Errorf("TurnsSinceLunch = %d, want reset to 0", got.TurnsSinceLunch)
	}
}

func TestAdvanceClampsBackwardsClock(t *testing.T) {
	s := driving(t, []string{"A", "B"})

	got, err := Advance(s, s.PhaseStartedAt.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got.PhaseStartedAt.Before(s.PhaseStartedAt) {
		t.Errorf("phase start went backwards: %s < %s", got.PhaseStartedAt, s.PhaseStartedAt)
	}
}

func TestAdvanceInactiveSession(t *testing.T) {
	if _, err := Advance(session.Default(), time.Now()); err == nil {
		t.Fatal("expected error advancing without a session")
	}
}

func TestOverrideBreak(t *testing.T) {
	s := driving(t, []string{"A", "B"})

	got, err := Override(s, session.PhaseBreak, s.PhaseStartedAt.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("Override: %v", err)
	}
	if got.Phase != session.PhaseBreak {
		t.Errorf("phase = %s, want break", got.Phase)
	}
	if got.TurnsSinceLunch != 1 {
		t.Errorf("TurnsSinceLunch = %d, want 1", got.TurnsSinceLunch)
	}
}

func TestOverrideLunchResetsCounter(t *testing.T) {
	s := driving(t, []string{"A", "B"})
	s.TurnsSinceLunch = 4

	got, err := Override(s, session.PhaseLunch, s.PhaseStartedAt.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("Override: %v", err)
	}
	if got.TurnsSinceLunch != 0 {
		t.Errorf("TurnsSinceLunch = %d, want 0", got.TurnsSinceLunch)
	}
}

func TestOverrideRejectsDriving(t *testing.T) {
	s := driving(t, []string{"A", "B"})
	if _, err := Override(s, session.PhaseDriving, time.Now()); err == nil {
		t.Fatal("expected error overriding into driving")
	}
}

func TestSkipPauseKeepsLunchPending(t *testing.T) {
	s := driving(t, []string{"A", "B", "C"})
	s.LunchEvery = 3
	s.TurnsSinceLunch = 2
	if got := NextPhase(s); got != session.PhaseLunch {
		t.Fatalf("NextPhase = %s, want lunch due", got)
	}

	now := s.PhaseStartedAt.Add(25 * time.Minute)
	s, err := SkipPause(s, now)
	if err != nil {
		t.Fatalf("SkipPause: %v", err)
	}

	if s.Phase != session.PhaseDriving {
		t.Errorf("Phase = %s, want driving", s.Phase)
	}
	if s.Driver() != "B" {
		t.Errorf("driver = %s, want B", s.Driver())
	}
	if s.TurnsSinceLunch != 3 {
		t.Errorf("TurnsSinceLunch = %d, want 3", s.TurnsSinceLunch)
	}
	// The skipped lunch comes up again as soon as this turn ends.
	if got := NextPhase(s); got != session.PhaseLunch {
		t.Errorf("NextPhase after skip = %s, want lunch still due", got)
	}
	if !s.PhaseStartedAt.Equal(now) {
		t.Errorf("PhaseStartedAt = %s, want %s", s.PhaseStartedAt, now)
	}
}

func TestSkipPauseRequiresDriving(t *testing.T) {
	s := driving(t, []string{"A", "B"})
	s.Phase = session.PhaseBreak

	if _, err := SkipPause(s, s.PhaseStartedAt.Add(time.Minute)); err == nil {
		t.Fatal("SkipPause on a break should fail")
	}
}
