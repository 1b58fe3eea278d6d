package main

import "github.com/charmbracelet/lipgloss"

// Theme defines the styles used by the renderer and the modal prompts.
// Only SGR styling goes through lipgloss; cursor positioning is written
// as raw control sequences by the renderer itself.
type Theme struct {
	UserPrefix  lipgloss.Style
	Assistant   lipgloss.Style
	Thinking    lipgloss.Style
	Error       lipgloss.Style
	Placeholder lipgloss.Style
	Separator   lipgloss.Style
	Hint        lipgloss.Style
	Selected    lipgloss.Style
	Candidate   lipgloss.Style
	Title       lipgloss.Style
}

func NewTheme() *Theme {
	return &Theme{
		UserPrefix:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F952F9")).Bold(true),
		Assistant:   lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAFA")),
		Thinking:    lipgloss.NewStyle().Faint(true).Italic(true),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("#F54545")),
		Placeholder: lipgloss.NewStyle().Faint(true),
		Separator:   lipgloss.NewStyle().Foreground(lipgloss.Color("#373702")),
		Hint:        lipgloss.NewStyle().Faint(true),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F4DB53")).Bold(true),
		Candidate:   lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Title:       lipgloss.NewStyle().Bold(true),
	}
}
