package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/parow/mob/internal/notify"
	"github.com/parow/mob/internal/schedule"
	"github.com/parow/mob/internal/session"
	"github.com/parow/mob/internal/tui"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Show a live countdown for the current phase",
	Long: `A foreground countdown for the current turn, break or lunch. Fires a
desktop notification once when the phase comes due. Purely a view; the
session only changes when someone runs 'mob next'.`,
	Args: cobra.NoArgs,
	RunE: runTimer,
}

func init() {
	rootCmd.AddCommand(timerCmd)
}

func runTimer(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	s, err := a.loadActive()
	if err != nil {
		return err
	}

	endsAt := s.PhaseStartedAt.Add(schedule.PhaseDuration(s))
	model := tui.NewTimer(string(s.Phase), endsAt, nextUpMessage(s), notify.PhaseDue)

	_, err = tea.NewProgram(model).Run()
	return err
}

func nextUpMessage(s session.Session) string {
	switch schedule.NextPhase(s) {
	case session.PhaseLunch:
		return "time for lunch, run 'mob next'"
	case session.PhaseBreak:
		return "time for a break, run 'mob next'"
	default:
		next := (s.DriverIndex + 1) % len(s.Participants)
		return fmt.Sprintf("%s is up next, run 'mob next'", s.Participants[next])
	}
}
