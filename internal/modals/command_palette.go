package modals

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/kview/internal/types"
	"github.com/renato0307/kview/internal/ui"
)

type operationItem struct {
	op types.Operation
}

func (i operationItem) FilterValue() string { return i.op.Name }
func (i operationItem) Title() string {
	if i.op.Shortcut != "" {
		return fmt.Sprintf("%s [%s]", i.op.Name, i.op.Shortcut)
	}
	return i.op.Name
}
func (i operationItem) Description() string { return i.op.Description }

// CommandPaletteModal runs one of the operations of the current screen.
type CommandPaletteModal struct {
	listPicker
}

func NewCommandPaletteModal(operations []types.Operation, theme *ui.Theme) *CommandPaletteModal {
	items := make([]list.Item, len(operations))
	for i, op := range operations {
		items[i] = operationItem{op: op}
	}

	return &CommandPaletteModal{
		listPicker: newListPicker("Commands", items, theme, true),
	}
}

func (m *CommandPaletteModal) Init() tea.Cmd {
	return nil
}

func (m *CommandPaletteModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			if item, ok := m.list.SelectedItem().(operationItem); ok {
				return m, tea.Batch(item.op.Execute(), closedCmd)
			}
		case key.Matches(msg, m.keys.Cancel):
			return m, closedCmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *CommandPaletteModal) View() string {
	return m.view()
}
