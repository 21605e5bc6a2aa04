package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorLavender lipgloss.Color = "#b4befe"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPink)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Padding(0, 1)

	activeTabStyle = tabStyle.
			Foreground(colorText).
			Background(colorSurface1).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorLavender).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorPink).
			Bold(true)

	dimStyle     = lipgloss.NewStyle().Foreground(colorOverlay1)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	busyStyle    = lipgloss.NewStyle().Foreground(colorYellow)
	helpStyle    = lipgloss.NewStyle().Foreground(colorOverlay1)
)
