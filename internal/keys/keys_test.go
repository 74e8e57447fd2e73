package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPress(t *testing.T) {
	k := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Intent
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, IntentPrev},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, IntentNext},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, IntentCancel},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, IntentCommit},
		{"letter", runes("a"), IntentNone},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Press(tt.msg))
		})
	}
}

func TestTriggersFetch(t *testing.T) {
	tests := []struct {
		name  string
		msg   tea.KeyMsg
		open  bool
		fetch bool
	}{
		{"letter", runes("a"), false, true},
		{"letter while open", runes("a"), true, true},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, true, true},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, true, true},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc"), Paste: true}, false, true},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, false, false},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, false, false},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, false, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, false, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, false, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, false, false},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, false, false},
		{"down while closed opens", tea.KeyMsg{Type: tea.KeyDown}, false, true},
		{"down while open navigates", tea.KeyMsg{Type: tea.KeyDown}, true, false},
		{"shift+down while open", tea.KeyMsg{Type: tea.KeyShiftDown}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fetch, TriggersFetch(tt.msg, tt.open))
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	h := help.New()
	out := h.View(DefaultKeyMap())

	assert.Contains(t, out, "accept")
	assert.Contains(t, out, "dismiss")
	assert.Len(t, DefaultKeyMap().FullHelp(), 2)
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "commit", IntentCommit.String())
	assert.Equal(t, "none", Intent(99).String())
}
