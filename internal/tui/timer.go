package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TimerModel is a live countdown for the active phase. The tool itself has
// no background process; this view is just a foreground clock that fires a
// single notification when the phase comes due.
type TimerModel struct {
	phase    string
	endsAt   time.Time
	nextUp   string
	notify    func(phase, next string) error
	now       time.Time
	notified  bool
	notifyErr error
}

type tickMsg time.Time

type notifiedMsg struct {
	err error
}

func NewTimer(phase string, endsAt time.Time, nextUp string, notify func(phase, next string) error) TimerModel {
	return TimerModel{
		phase:  phase,
		endsAt: endsAt,
		nextUp: nextUp,
		notify: notify,
		now:    time.Now(),
	}
}

func (m TimerModel) Init() tea.Cmd {
	return tickCmd()
}

func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tickMsg:
		m.now = time.Time(msg)
		if !m.notified && !m.now.Before(m.endsAt) {
			m.notified = true
			notify := m.notify
			phase, next := m.phase, m.nextUp
			return m, tea.Batch(tickCmd(), func() tea.Msg {
				return notifiedMsg{err: notify(phase, next)}
			})
		}
		return m, tickCmd()

	case notifiedMsg:
		m.notifyErr = msg.err
		return m, nil
	}

	return m, nil
}

func (m TimerModel) View() string {
	remaining := m.endsAt.Sub(m.now).Round(time.Second)

	header := fmt.Sprintf("%s %s", phaseIcon(m.phase), m.phase)
	var b string
	b += headerStyle.Render(header) + "\n"

	if remaining >= 0 {
		b += countdownStyle.Foreground(phaseColor(m.phase)).Render(formatClock(remaining)) + "\n"
	} else {
		over := lipgloss.NewStyle().Bold(true).Foreground(colorOverdue)
		b += countdownStyle.Render(over.Render(fmt.Sprintf("over by %s", formatClock(-remaining)))) + "\n"
		b += hintStyle.Render("  "+m.nextUp) + "\n"
	}

	if m.notifyErr != nil {
		b += hintStyle.Render(fmt.Sprintf("  notification failed: %v", m.notifyErr)) + "\n"
	}
	b += footerStyle.Render("q:quit")
	return b
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%02d:%02d", m, s)
}
