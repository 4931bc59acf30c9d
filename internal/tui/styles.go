package tui

import (
	"github.com/charmbracelet/lipgloss"

	"intervaltimer/internal/core/timer"
)

var (
	prepareColor = lipgloss.Color("#EF8F00")
	workColor    = lipgloss.Color("#C62828")
	restColor    = lipgloss.Color("#2E7D32")
	doneColor    = lipgloss.Color("#1565C0")
	mutedColor   = lipgloss.Color("#888888")

	frameStyle = lipgloss.NewStyle().
			Padding(1, 4).
			Border(lipgloss.RoundedBorder())

	remainingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	intervalsStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	pausedStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(mutedColor)

	dialogStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(workColor)
)

func phaseColor(phase timer.Phase) lipgloss.Color {
	switch phase {
	case timer.PhaseWork:
		return workColor
	case timer.PhaseRest:
		return restColor
	case timer.PhaseDone:
		return doneColor
	default:
		return prepareColor
	}
}

func phaseStyle(phase timer.Phase) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(phaseColor(phase))
}
