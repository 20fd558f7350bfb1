package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/parow/mob/internal/schedule"
	"github.com/parow/mob/internal/session"
)

func TestRenderStatusDriving(t *testing.T) {
	s := session.New([]string{"alice", "bob"}, "main", "mob/main", "origin", time.Now())
	s.TurnDuration = session.Duration(10 * time.Minute)

	out := RenderStatus(s, schedule.Status{Remaining: 3 * time.Minute})
	for _, want := range []string{"alice is driving", "mob/main", "main", "bob"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "›") {
		t.Errorf("status output missing driver marker:\n%s", out)
	}
}

func TestRenderStatusOverdue(t *testing.T) {
	s := session.New([]string{"alice"}, "main", "mob/main", "origin", time.Now())

	out := RenderStatus(s, schedule.Status{Remaining: -time.Minute, Overdue: true})
	if !strings.Contains(out, "overdue by 1m0s") {
		t.Errorf("status output missing overdue notice:\n%s", out)
	}
}

func TestRenderStatusNoSession(t *testing.T) {
	out := RenderStatus(session.Default(), schedule.Status{})
	if !strings.Contains(out, "No session") || !strings.Contains(out, "mob start") {
		t.Errorf("idle status output = %q", out)
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{10 * time.Minute, "10:00"},
		{93 * time.Minute, "93:00"},
	}
	for _, tc := range cases {
		if got := formatClock(tc.d); got != tc.want {
			t.Errorf("formatClock(%s) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
