package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles shared by all screens
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
	Banner  lipgloss.Style
	Help    lipgloss.Style
}

func NewStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Banner:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
