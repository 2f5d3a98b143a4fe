package modals

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/kview/internal/i18n"
	"github.com/renato0307/kview/internal/interval"
	"github.com/renato0307/kview/internal/logging"
	"github.com/renato0307/kview/internal/messages"
	"github.com/renato0307/kview/internal/settings"
	"github.com/renato0307/kview/internal/types"
	"github.com/renato0307/kview/internal/ui"
)

type intervalItem struct {
	option interval.Option
}

func (i intervalItem) FilterValue() string { return i.option.Label }
func (i intervalItem) Title() string       { return i.option.Label }
func (i intervalItem) Description() string { return i.option.Key }

// IntervalModal picks the refresh interval. The choice applies immediately
// and is persisted in the background.
type IntervalModal struct {
	listPicker
	selector *interval.Selector
	store    *settings.Setting[string]
	tr       i18n.Translator
	chosen   *time.Duration
}

// NewIntervalModal lists the interval options with current selected. store
// may be nil, then nothing is persisted.
func NewIntervalModal(current *time.Duration, store *settings.Setting[string], theme *ui.Theme, tr i18n.Translator) *IntervalModal {
	options := interval.Options(tr)
	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = intervalItem{option: opt}
	}

	m := &IntervalModal{
		listPicker: newListPicker(tr.T("monitoring~Refresh interval"), items, theme, false),
		store:      store,
		tr:         tr,
	}
	m.selector = interval.NewSelector(current, func(d *time.Duration) { m.chosen = d })

	currentKey, err := m.selector.Key()
	if err != nil {
		logging.Warn("Current refresh interval is not an option", "error", err)
		currentKey = interval.OffKey
	}
	for i, opt := range options {
		if opt.Key == currentKey {
			m.list.Select(i)
		}
	}
	return m
}

func (m *IntervalModal) Init() tea.Cmd {
	return nil
}

func (m *IntervalModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			item, ok := m.list.SelectedItem().(intervalItem)
			if !ok {
				return m, nil
			}
			return m, m.choose(item.option)
		case key.Matches(msg, m.keys.Cancel):
			return m, closedCmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *IntervalModal) choose(opt interval.Option) tea.Cmd {
	if err := m.selector.Select(opt.Key); err != nil {
		return messages.ErrorCmd("%v", err)
	}
	return tea.Batch(
		messages.MsgCmd(types.IntervalSelectedMsg{Key: opt.Key, Interval: m.chosen}),
		m.persist(opt),
		closedCmd,
	)
}

// persist stores the interval key so the next session starts with it.
func (m *IntervalModal) persist(opt interval.Option) tea.Cmd {
	store := m.store
	confirm := m.tr.T("monitoring~Refresh interval set to {{interval}}", opt.Label)
	return func() tea.Msg {
		if store != nil {
			err := store.Set(context.Background(), func(string) string { return opt.Key })
			if err != nil {
				return types.ErrorStatusMsg(messages.WrapError(err, "failed to save refresh interval").Error())
			}
		}
		return types.InfoMsg(confirm)
	}
}

func (m *IntervalModal) View() string {
	return m.view()
}
