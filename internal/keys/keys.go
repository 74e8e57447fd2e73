// Package keys classifies key messages for the suggestion dropdown.
//
// A terminal delivers a single message per key, so each message is routed
// twice: once as a press (selection and commit) and once as a release
// (text changes that may trigger a fetch).
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Intent is what a key press asks of the selection state machine
type Intent int

const (
	IntentNone Intent = iota
	IntentPrev
	IntentNext
	IntentCancel
	IntentCommit
)

func (i Intent) String() string {
	switch i {
	case IntentPrev:
		return "prev"
	case IntentNext:
		return "next"
	case IntentCancel:
		return "cancel"
	case IntentCommit:
		return "commit"
	default:
		return "none"
	}
}

// KeyMap holds the dropdown bindings
type KeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Cancel key.Binding
	Commit key.Binding
}

// DefaultKeyMap returns the standard arrow/escape/enter bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous suggestion"),
		),
		Next: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next suggestion"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Commit, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next}, {k.Commit, k.Cancel}}
}

// Press maps a key to its press-phase intent
func (k KeyMap) Press(msg tea.KeyMsg) Intent {
	switch {
	case key.Matches(msg, k.Prev):
		return IntentPrev
	case key.Matches(msg, k.Next):
		return IntentNext
	case key.Matches(msg, k.Cancel):
		return IntentCancel
	case key.Matches(msg, k.Commit):
		return IntentCommit
	}
	return IntentNone
}

// textNeutral keys never change the input value
var textNeutral = map[tea.KeyType]bool{
	tea.KeyUp:             true,
	tea.KeyLeft:           true,
	tea.KeyRight:          true,
	tea.KeyEnter:          true,
	tea.KeyEsc:            true,
	tea.KeyTab:            true,
	tea.KeyShiftTab:       true,
	tea.KeyShiftUp:        true,
	tea.KeyShiftLeft:      true,
	tea.KeyShiftRight:     true,
	tea.KeyCtrlUp:         true,
	tea.KeyCtrlLeft:       true,
	tea.KeyCtrlRight:      true,
	tea.KeyCtrlShiftUp:    true,
	tea.KeyCtrlShiftLeft:  true,
	tea.KeyCtrlShiftRight: true,
}

var downKeys = map[tea.KeyType]bool{
	tea.KeyDown:          true,
	tea.KeyShiftDown:     true,
	tea.KeyCtrlDown:      true,
	tea.KeyCtrlShiftDown: true,
}

// IsTextNeutral reports whether msg is a navigation or control key
func IsTextNeutral(msg tea.KeyMsg) bool {
	return textNeutral[msg.Type]
}

// IsDown reports whether msg is a down arrow, with or without modifiers
func IsDown(msg tea.KeyMsg) bool {
	return downKeys[msg.Type]
}

// TriggersFetch reports whether the release phase of msg should go to the
// fetch coordinator. Down opens the dropdown while it is closed and is
// reserved for navigation while it is open.
func TriggersFetch(msg tea.KeyMsg, panelOpen bool) bool {
	if IsTextNeutral(msg) {
		return false
	}
	if IsDown(msg) && panelOpen {
		return false
	}
	return true
}
