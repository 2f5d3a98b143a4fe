package modals

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/kview/internal/i18n"
	"github.com/renato0307/kview/internal/messages"
	"github.com/renato0307/kview/internal/types"
	"github.com/renato0307/kview/internal/ui"
)

type screenItem struct {
	id    string
	title string
}

func (i screenItem) FilterValue() string { return i.title }
func (i screenItem) Title() string       { return i.title }
func (i screenItem) Description() string { return i.id }

// ScreenPickerModal switches between the registered screens.
type ScreenPickerModal struct {
	listPicker
}

func NewScreenPickerModal(screens []types.Screen, current string, theme *ui.Theme, tr i18n.Translator) *ScreenPickerModal {
	items := make([]list.Item, len(screens))
	selected := 0
	for i, screen := range screens {
		items[i] = screenItem{
			id:    screen.ID(),
			title: screen.Title(),
		}
		if screen.ID() == current {
			selected = i
		}
	}

	m := &ScreenPickerModal{
		listPicker: newListPicker(tr.T("public~Select screen"), items, theme, true),
	}
	m.list.Select(selected)
	return m
}

func (m *ScreenPickerModal) Init() tea.Cmd {
	return nil
}

func (m *ScreenPickerModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			if item, ok := m.list.SelectedItem().(screenItem); ok {
				return m, tea.Batch(
					messages.MsgCmd(types.ScreenSwitchMsg{ScreenID: item.id}),
					closedCmd,
				)
			}
		case key.Matches(msg, m.keys.Cancel):
			return m, closedCmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *ScreenPickerModal) View() string {
	return m.view()
}
