package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Phase colors
	colorDriving = lipgloss.Color("46")  // green
	colorBreak   = lipgloss.Color("33")  // blue
	colorLunch   = lipgloss.Color("214") // orange
	colorStopped = lipgloss.Color("196") // red
	colorOverdue = lipgloss.Color("220") // yellow
	colorMuted   = lipgloss.Color("240") // gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			PaddingLeft(1).
			PaddingRight(1)

	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			PaddingLeft(2).
			PaddingTop(1).
			PaddingBottom(1)

	branchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("cyan"))

	hintStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	markerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)

func phaseIcon(phase string) string {
	switch phase {
	case "driving":
		return "🚗"
	case "break":
		return "☕"
	case "lunch":
		return "🍜"
	case "done":
		return "🏁"
	default:
		return "✋"
	}
}

func phaseColor(phase string) lipgloss.Color {
	switch phase {
	case "driving":
		return colorDriving
	case "break":
		return colorBreak
	case "lunch":
		return colorLunch
	default:
		return colorStopped
	}
}
