package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions of the demo screen
type Styles struct {
	Title         lipgloss.Style
	Label         lipgloss.Style
	Body          lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Label:         lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Body:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Dim:           lipgloss.NewStyle().Faint(true),
		Help:          lipgloss.NewStyle().Faint(true),
	}
}
