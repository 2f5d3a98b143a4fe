package keyboard

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestModalKeys(t *testing.T) {
	km := Default().ModalKeys()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"space toggles", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, km.Toggle},
		{"r restores", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, km.Restore},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, km.Confirm},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, km.Cancel},
		{"j moves down", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, km.Down},
		{"arrow moves up", tea.KeyMsg{Type: tea.KeyUp}, km.Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}

	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Toggle))
}

func TestGlobalKeys(t *testing.T) {
	km := Default().GlobalKeys()

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}, km.Columns))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}}, km.Interval))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, km.Quit))
}

func TestShortHelp(t *testing.T) {
	km := Default().GlobalKeys()
	assert.Equal(t, "c: columns • i: interval", ShortHelp(km.Columns, km.Interval))
	assert.Empty(t, ShortHelp())
}
