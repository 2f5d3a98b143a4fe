package components

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/kview/internal/messages"
	"github.com/renato0307/kview/internal/types"
	"github.com/renato0307/kview/internal/ui"
)

// FilterBar is the one-line fuzzy filter input below the table. Every edit
// emits a FilterUpdateMsg for the current screen.
type FilterBar struct {
	input textinput.Model
	width int
	theme *ui.Theme
}

// NewFilterBar creates a hidden filter bar.
func NewFilterBar(theme *ui.Theme) *FilterBar {
	input := textinput.New()
	input.Prompt = "/"
	input.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	input.TextStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	input.Cursor.SetMode(cursor.CursorStatic)

	return &FilterBar{input: input, theme: theme}
}

// Activate starts editing the filter.
func (f *FilterBar) Activate() tea.Cmd {
	return f.input.Focus()
}

// IsActive reports whether key presses go to the filter.
func (f *FilterBar) IsActive() bool {
	return f.input.Focused()
}

// Value returns the current filter text.
func (f *FilterBar) Value() string {
	return f.input.Value()
}

// Reset clears the filter without emitting a message.
func (f *FilterBar) Reset() {
	f.input.SetValue("")
	f.input.Blur()
}

func (f *FilterBar) SetWidth(width int) {
	f.width = width
	f.input.Width = max(width-4, 1)
}

// Update handles key presses while the filter is active.
func (f *FilterBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		f.Reset()
		return messages.MsgCmd(types.ClearFilterMsg{})
	case "enter":
		f.input.Blur()
		return nil
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() == before {
		return cmd
	}

	if f.input.Value() == "" {
		return tea.Batch(cmd, messages.MsgCmd(types.ClearFilterMsg{}))
	}
	return tea.Batch(cmd, messages.MsgCmd(types.FilterUpdateMsg{Filter: f.input.Value()}))
}

// View renders the filter line, or an empty line when there is no filter.
func (f *FilterBar) View() string {
	style := lipgloss.NewStyle().
		Width(f.width).
		Padding(0, 1)

	if !f.IsActive() && f.Value() == "" {
		return style.Render("")
	}
	return style.Render(f.input.View())
}
