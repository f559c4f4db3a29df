package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors of the profile screen.
type Theme struct {
	Name string

	Text    string
	Muted   string
	Accent  string
	Border  string
	Success string
	Warning string
	Danger  string
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	MutedText   lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	Panel       lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Width(12),

		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Italic(true),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
	}
}

var themes = map[string]Theme{
	"dark": {
		Name:    "dark",
		Text:    "#f8f8f2",
		Muted:   "#8b93a6",
		Accent:  "#bd93f9",
		Border:  "#44475a",
		Success: "#50fa7b",
		Warning: "#f1fa8c",
		Danger:  "#ff5555",
	},
	"light": {
		Name:    "light",
		Text:    "#1f2328",
		Muted:   "#656d76",
		Accent:  "#8250df",
		Border:  "#d0d7de",
		Success: "#1a7f37",
		Warning: "#9a6700",
		Danger:  "#cf222e",
	},
}

// GetTheme returns the named theme, falling back to dark.
func GetTheme(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return themes["dark"]
}
