package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#3B82F6")
	colorAccent  = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorFg      = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Transcript styles
	QueryStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError)

	ConfirmStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	// Status styles
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(colorFg).
			Padding(0, 1)

	// Input style
	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)
)

// RenderError renders an error line
func RenderError(err string) string {
	return ErrorMessageStyle.Render("Error: " + err)
}
