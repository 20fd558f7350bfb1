package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/parow/mob/internal/schedule"
	"github.com/parow/mob/internal/session"
)

// RenderStatus renders the status command's report: phase, timing, branch
// pair and the driver roster with the current driver marked.
func RenderStatus(s session.Session, st schedule.Status) string {
	var b strings.Builder

	switch s.Phase {
	case session.PhaseNotStarted, session.PhaseDone:
		b.WriteString(fmt.Sprintf("%s %s\n", phaseIcon(string(s.Phase)),
			lipgloss.NewStyle().Bold(true).Foreground(colorStopped).Render("No session")))
		b.WriteString(hintStyle.Render("   run 'mob start' to begin") + "\n")
		return b.String()

	case session.PhaseDriving:
		driver := lipgloss.NewStyle().Bold(true).Foreground(colorDriving).Render(s.Driver())
		b.WriteString(fmt.Sprintf("%s %s is driving\n", phaseIcon("driving"), driver))

	case session.PhaseBreak, session.PhaseLunch:
		phase := lipgloss.NewStyle().Bold(true).Foreground(phaseColor(string(s.Phase))).Render(string(s.Phase))
		b.WriteString(fmt.Sprintf("%s on %s\n", phaseIcon(string(s.Phase)), phase))
	}

	b.WriteString("   " + renderTiming(st) + "\n")
	b.WriteString(fmt.Sprintf("\n🚚 working on %s with base %s\n",
		branchStyle.Render(s.WIPBranch), branchStyle.Render(s.BaseBranch)))
	b.WriteString(renderRoster(s))

	return b.String()
}

func renderTiming(st schedule.Status) string {
	if st.Overdue {
		over := (-st.Remaining).Round(time.Second)
		return lipgloss.NewStyle().Foreground(colorOverdue).
			Render(fmt.Sprintf("overdue by %s, run 'mob next'", over))
	}
	return hintStyle.Render(fmt.Sprintf("%s remaining", st.Remaining.Round(time.Second)))
}

func renderRoster(s session.Session) string {
	if len(s.Participants) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n👯 Drivers:\n")
	for i, name := range s.Participants {
		if runewidth.StringWidth(name) > 30 {
			name = runewidth.Truncate(name, 27, "...")
		}
		marker := " "
		if i == s.DriverIndex {
			marker = markerStyle.Render("›")
		}
		b.WriteString(fmt.Sprintf(" %s %s\n", marker, name))
	}
	return b.String()
}
