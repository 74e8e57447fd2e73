package panel

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions for the panel
type Styles struct {
	Panel    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Group    lipgloss.Style
	Empty    lipgloss.Style
	Classes  map[string]Class
}

// Class is a named set of overrides applied to the panel root
type Class struct {
	Border      *lipgloss.Border
	BorderColor lipgloss.TerminalColor
	Foreground  lipgloss.TerminalColor
	Background  lipgloss.TerminalColor
}

func (c Class) apply(s lipgloss.Style) lipgloss.Style {
	if c.Border != nil {
		s = s.Border(*c.Border)
	}
	if c.BorderColor != nil {
		s = s.BorderForeground(c.BorderColor)
	}
	if c.Foreground != nil {
		s = s.Foreground(c.Foreground)
	}
	if c.Background != nil {
		s = s.Background(c.Background)
	}
	return s
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")),
		Item:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Bold(true),
		Group:    lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Empty:    lipgloss.NewStyle().Faint(true).Italic(true),
		Classes:  make(map[string]Class),
	}
}

// Root returns the panel frame style with the named class applied
func (s *Styles) Root(className string) lipgloss.Style {
	root := s.Panel
	if c, ok := s.Classes[className]; ok {
		root = c.apply(root)
	}
	return root
}

// BorderByName maps a config border name to a lipgloss border
func BorderByName(name string) (lipgloss.Border, bool) {
	switch name {
	case "normal":
		return lipgloss.NormalBorder(), true
	case "rounded":
		return lipgloss.RoundedBorder(), true
	case "thick":
		return lipgloss.ThickBorder(), true
	case "double":
		return lipgloss.DoubleBorder(), true
	case "hidden":
		return lipgloss.HiddenBorder(), true
	}
	return lipgloss.Border{}, false
}
