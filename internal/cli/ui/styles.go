package ui

import "github.com/charmbracelet/lipgloss"

// Adaptive colors follow the theme chosen with SetTheme
var (
	accent = lipgloss.AdaptiveColor{Light: "25", Dark: "86"}
	muted  = lipgloss.AdaptiveColor{Light: "242", Dark: "245"}
	value  = lipgloss.AdaptiveColor{Light: "130", Dark: "229"}
	pink   = lipgloss.AdaptiveColor{Light: "161", Dark: "212"}
	green  = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	red    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
)

// Styles defines all lipgloss styles used in the CLI
var Styles = struct {
	Bold       lipgloss.Style
	Title      lipgloss.Style
	Key        lipgloss.Style
	Value      lipgloss.Style
	Highlight  lipgloss.Style
	Active     lipgloss.Style
	Inactive   lipgloss.Style
	Header     lipgloss.Style
	Cell       lipgloss.Style
	SuccessBox lipgloss.Style
	ErrorBox   lipgloss.Style
}{
	Bold:      lipgloss.NewStyle().Bold(true),
	Title:     lipgloss.NewStyle().Foreground(accent).Bold(true).MarginBottom(1),
	Key:       lipgloss.NewStyle().Foreground(muted),
	Value:     lipgloss.NewStyle().Foreground(value),
	Highlight: lipgloss.NewStyle().Foreground(pink).Bold(true),
	Active:    lipgloss.NewStyle().Foreground(green),
	Inactive:  lipgloss.NewStyle().Foreground(red),
	Header:    lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(0, 1),
	Cell:      lipgloss.NewStyle().Padding(0, 1),

	SuccessBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(green).
		Padding(0, 1).
		Width(60),

	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(red).
		Padding(0, 1).
		Width(60),
}

// SetTheme switches the adaptive palette between "light" and "dark"
func SetTheme(theme string) {
	lipgloss.SetHasDarkBackground(theme == "dark")
}
