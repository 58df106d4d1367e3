package render

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	key     lipgloss.Style
	value   lipgloss.Style
	accent  lipgloss.Style
	credits lipgloss.Style
	warning lipgloss.Style
	empty   lipgloss.Style
	section lipgloss.Style
	free    lipgloss.Style
	paid    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		accent:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		credits: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:   lipgloss.NewStyle().Faint(true),
		section: lipgloss.NewStyle().MarginTop(1),
		free:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		paid:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
}
