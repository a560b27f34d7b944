package editor

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#2196F3")
	colorAccent  = lipgloss.Color("#8BC34A")
	colorError   = lipgloss.Color("#e53935")
	colorMuted   = lipgloss.Color("240")
	colorWarning = lipgloss.Color("#FFC107")
)

// Styles groups the lipgloss styles used by all editor screens.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
	Confirm lipgloss.Style
	Search  lipgloss.Style
	Table   lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true),
		Status: lipgloss.NewStyle().
			Foreground(colorAccent),
		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(colorMuted),
		Confirm: lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true),
		Search: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1),
		Table: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted),
	}
}
