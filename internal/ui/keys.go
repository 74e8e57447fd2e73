package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"autosuggest/autocomplete"
)

// keyMap holds the demo screen bindings next to the dropdown bindings
type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Browse   key.Binding
	Focus    key.Binding
	Submit   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	Suggest autocomplete.KeyMap
}

func newKeyMap(suggest autocomplete.KeyMap) keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Browse: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "browse corpus"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle focus"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Suggest: suggest,
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return append(k.Suggest.ShortHelp(), k.Focus, k.Browse, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return append(k.Suggest.FullHelp(),
		[]key.Binding{k.Focus, k.Submit},
		[]key.Binding{k.PageUp, k.PageDown},
		[]key.Binding{k.Browse, k.Help, k.Quit},
	)
}
