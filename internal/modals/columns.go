package modals

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/kview/internal/columns"
	"github.com/renato0307/kview/internal/i18n"
	"github.com/renato0307/kview/internal/keyboard"
	"github.com/renato0307/kview/internal/logging"
	"github.com/renato0307/kview/internal/messages"
	"github.com/renato0307/kview/internal/types"
	"github.com/renato0307/kview/internal/ui"
)

// columnsSavedMsg carries the result of the settings write back to the modal.
type columnsSavedMsg struct {
	ids []string
	err error
}

// ColumnsModal lets the user pick the columns of one resource table.
type ColumnsModal struct {
	ctrl   *columns.Controller
	theme  *ui.Theme
	tr     i18n.Translator
	keys   keyboard.ModalKeyMap
	cursor int
	saving bool
	closed bool
	width  int
	height int
}

// NewColumnsModal opens column management for layout. Choices are written
// to store on enter.
func NewColumnsModal(layout columns.Layout, store columns.ColumnSettings, theme *ui.Theme, tr i18n.Translator) (*ColumnsModal, error) {
	m := &ColumnsModal{
		theme: theme,
		tr:    tr,
		keys:  keyboard.GetKeys().ModalKeys(),
	}
	// Commit runs inside a command, so closing is applied when its result
	// reaches Update rather than through the controller callback.
	ctrl, err := columns.NewController(layout, store, m.markClosed, nil)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	return m, nil
}

func (m *ColumnsModal) markClosed() {
	m.closed = true
}

// Controller exposes the selection state for the host and tests.
func (m *ColumnsModal) Controller() *columns.Controller {
	return m.ctrl
}

func (m *ColumnsModal) Init() tea.Cmd {
	return nil
}

func (m *ColumnsModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case columnsSavedMsg:
		m.saving = false
		if msg.err != nil {
			return m, messages.ErrorCmd("%v", msg.err)
		}
		layout := m.ctrl.Layout()
		m.markClosed()
		return m, tea.Batch(
			messages.MsgCmd(types.ColumnsCommittedMsg{LayoutID: layout.ID, IDs: msg.ids}),
			messages.SuccessCmd("%s", m.tr.T("public~Saved {{resourceKind}} columns", layout.Type)),
			closedCmd,
		)

	case tea.KeyMsg:
		if m.saving || m.closed {
			return m, nil
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *ColumnsModal) handleKey(msg tea.KeyMsg) tea.Cmd {
	rows := m.rows()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(rows) {
			m.ctrl.Toggle(rows[m.cursor].Column.ID)
		}
	case key.Matches(msg, m.keys.Restore):
		m.ctrl.Reset()
	case key.Matches(msg, m.keys.Confirm):
		return m.commit()
	case key.Matches(msg, m.keys.Cancel):
		if err := m.ctrl.Cancel(); err != nil {
			logging.Warn("Column management already finished", "error", err)
			return nil
		}
		return closedCmd
	}
	return nil
}

// commit snapshots the selection here and writes it in a command so the
// settings round trip does not block the UI.
func (m *ColumnsModal) commit() tea.Cmd {
	m.saving = true
	pending := m.ctrl.Snapshot()
	return func() tea.Msg {
		ids, err := pending.Save(context.Background())
		return columnsSavedMsg{ids: ids, err: err}
	}
}

// rows lists default columns first, then additional ones, which is also the
// order the sections are drawn in.
func (m *ColumnsModal) rows() []columns.Row {
	return append(m.ctrl.DefaultRows(), m.ctrl.AdditionalRows()...)
}

func (m *ColumnsModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ColumnsModal) View() string {
	styles := m.theme.Modal
	layout := m.ctrl.Layout()

	header := []string{
		styles.Title.Render(m.tr.T("modal~Manage columns")),
		m.tr.T("modal~Selected columns will appear in the table."),
		styles.Notice.Render(m.tr.T("modal~You can select up to {{MAX_VIEW_COLS}} columns", columns.MaxViewColumns)),
	}
	if layout.Has(columns.NamespaceColumnID) {
		header = append(header, styles.Notice.Render(
			m.tr.T("modal~The namespace column is only shown when in \"All namespaces\"")))
	}

	defaults := m.ctrl.DefaultRows()
	sections := append(header,
		"",
		styles.Section.Render(m.tr.T("modal~Default {{resourceKind}} columns", layout.Type)),
		m.renderRows(defaults, 0),
	)
	if additional := m.ctrl.AdditionalRows(); len(additional) > 0 {
		sections = append(sections,
			"",
			styles.Section.Render(m.tr.T("modal~Additional columns")),
			m.renderRows(additional, len(defaults)),
		)
	}
	sections = append(sections,
		"",
		styles.Notice.Render(m.footer()),
	)

	return frame(m.theme, m.width, sections...)
}

func (m *ColumnsModal) footer() string {
	hints := []struct {
		binding key.Binding
		label   string
	}{
		{m.keys.Toggle, m.tr.T("modal~Toggle")},
		{m.keys.Restore, m.tr.T("modal~Restore default columns")},
		{m.keys.Confirm, m.tr.T("public~Save")},
		{m.keys.Cancel, m.tr.T("public~Cancel")},
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = h.binding.Help().Key + ": " + h.label
	}
	return strings.Join(parts, " • ")
}

func (m *ColumnsModal) renderRows(rows []columns.Row, offset int) string {
	styles := m.theme.Modal
	lines := make([]string, len(rows))
	for i, row := range rows {
		box := "[ ]"
		if row.Checked {
			box = styles.Checked.Render("[x]")
		}
		title := row.Column.Title
		if row.Disabled {
			title = styles.Disabled.Render(title)
		}

		prefix := "  "
		if offset+i == m.cursor {
			prefix = styles.Cursor.Render("› ")
		}
		lines[i] = fmt.Sprintf("%s%s %s", prefix, box, title)
	}
	return strings.Join(lines, "\n")
}

func closedCmd() tea.Msg {
	return types.ModalClosedMsg{}
}
