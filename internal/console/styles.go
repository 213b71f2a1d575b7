package console

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorOK     = lipgloss.Color("#10B981")
	colorWarn   = lipgloss.Color("#F59E0B")
	colorError  = lipgloss.Color("#EF4444")
	colorKey    = lipgloss.Color("#3B82F6")
	colorBanner = lipgloss.Color("#60A5FA")
	colorMuted  = lipgloss.Color("#6B7280")
)

// Styles groups the styles used to render executor messages
type Styles struct {
	OK       lipgloss.Style
	NotFound lipgloss.Style
	Notice   lipgloss.Style
	Key      lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Banner   lipgloss.Style
	Muted    lipgloss.Style
}

// DefaultStyles returns the colored styles
func DefaultStyles() Styles {
	return Styles{
		OK:       lipgloss.NewStyle().Foreground(colorOK),
		NotFound: lipgloss.NewStyle().Foreground(colorWarn),
		Notice:   lipgloss.NewStyle().Foreground(colorWarn),
		Key:      lipgloss.NewStyle().Foreground(colorKey).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(colorWarn).Bold(true),
		Banner:   lipgloss.NewStyle().Foreground(colorBanner),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
	}
}

// PlainStyles returns styles that render text unchanged
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		OK:       plain,
		NotFound: plain,
		Notice:   plain,
		Key:      plain,
		Error:    plain,
		Warning:  plain,
		Banner:   plain,
		Muted:    plain,
	}
}
