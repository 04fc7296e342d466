// Package themes holds the explorer's color themes.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title      lipgloss.Style
	Heading    lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Cursor     lipgloss.Style
	Checked    lipgloss.Style
	Unchecked  lipgloss.Style
	ActiveTab  lipgloss.Style
	Tab        lipgloss.Style
	Sidebar    lipgloss.Style
	Content    lipgloss.Style
	StatusBar  lipgloss.Style
	Warning    lipgloss.Style
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
}

func build(primary, accent, border, fg, muted lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Accent:     accent,
		Border:     border,
		Foreground: fg,
		Subtle:     muted,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			MarginTop(1),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Checked: lipgloss.NewStyle().
			Foreground(primary),
		Unchecked: lipgloss.NewStyle().
			Foreground(muted),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			Background(primary).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Content: lipgloss.NewStyle().
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(muted),
		Warning: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
	}
}

// Default is the default theme.
var Default = build(
	lipgloss.Color("#4C78A8"),
	lipgloss.Color("#F58518"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#737373"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#6c7086"),
)

// ByName returns the named theme, falling back to Default.
func ByName(name string) Theme {
	if name == "catppuccin" {
		return CatppuccinMocha
	}
	return Default
}
