package cli

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/parow/mob/internal/config"
	"github.com/parow/mob/internal/handoff"
	"github.com/parow/mob/internal/prompt"
	"github.com/parow/mob/internal/rotation"
	"github.com/parow/mob/internal/session"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"generic", errors.New("boom"), 1},
		{"git sync", handoff.NewSyncError(handoff.KindPushRejected, "mob/main", errors.New("rejected")), 2},
		{"wrapped git sync", fmt.Errorf("hand off: %w", handoff.NewSyncError(handoff.KindTimeout, "mob/main", errors.New("timeout"))), 2},
		{"corrupt state", &session.CorruptStateError{Path: "x", Err: errors.New("bad yaml")}, 3},
		{"empty roster", rotation.EmptyRosterError{}, 4},
		{"config", &config.Error{Path: "x", Err: errors.New("bad duration")}, 5},
		{"cancelled", prompt.ErrCancelled, 6},
		{"wrapped cancelled", fmt.Errorf("next: %w", prompt.ErrCancelled), 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestNextUpMessage(t *testing.T) {
	s := session.New([]string{"alice", "bob"}, "main", "mob/main", "origin", time.Now())
	s.LunchEvery = 6

	if got := nextUpMessage(s); got != "time for a break, run 'mob next'" {
		t.Errorf("driving next-up = %q", got)
	}

	s.TurnsSinceLunch = 5
	if got := nextUpMessage(s); got != "time for lunch, run 'mob next'" {
		t.Errorf("pre-lunch next-up = %q", got)
	}

	s.Phase = session.PhaseBreak
	if got := nextUpMessage(s); got != "bob is up next, run 'mob next'" {
		t.Errorf("break next-up = %q", got)
	}
}

func TestGuardDriver(t *testing.T) {
	s := session.New([]string{"alice", "bob"}, "main", "mob/main", "origin", time.Now())

	refuse := prompt.Func(func(question string, def bool) (bool, error) {
		if def {
			t.Errorf("non-driver handoff should not default to yes")
		}
		return false, nil
	})
	allow := prompt.Func(func(string, bool) (bool, error) { return true, nil })
	never := prompt.Func(func(string, bool) (bool, error) {
		t.Error("unexpected confirmation prompt")
		return false, nil
	})

	t.Run("no name configured", func(t *testing.T) {
		a := &app{cfg: &config.Config{}, confirm: never}
		if err := a.guardDriver(s); err != nil {
			t.Errorf("guardDriver = %v, want nil", err)
		}
	})

	t.Run("driver's own machine", func(t *testing.T) {
		a := &app{cfg: &config.Config{Name: "alice"}, confirm: never}
		if err := a.guardDriver(s); err != nil {
			t.Errorf("guardDriver = %v, want nil", err)
		}
	})

	t.Run("someone else declines", func(t *testing.T) {
		a := &app{cfg: &config.Config{Name: "bob"}, confirm: refuse}
		err := a.guardDriver(s)
		if !errors.Is(err, prompt.ErrCancelled) {
			t.Errorf("guardDriver = %v, want cancelled", err)
		}
	})

	t.Run("someone else insists", func(t *testing.T) {
		a := &app{cfg: &config.Config{Name: "bob"}, confirm: allow}
		if err := a.guardDriver(s); err != nil {
			t.Errorf("guardDriver = %v, want nil after confirmation", err)
		}
	})
}
