package modals

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/kview/internal/columns"
	"github.com/renato0307/kview/internal/i18n"
	"github.com/renato0307/kview/internal/k8s"
	"github.com/renato0307/kview/internal/settings"
	"github.com/renato0307/kview/internal/types"
	"github.com/renato0307/kview/internal/ui"
)

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyR     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
)

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func countClosed(msgs []tea.Msg) int {
	n := 0
	for _, msg := range msgs {
		if _, ok := msg.(types.ModalClosedMsg); ok {
			n++
		}
	}
	return n
}

type failingStore struct{}

func (failingStore) Set(context.Context, func(settings.TableColumns) settings.TableColumns) error {
	return errors.New("forbidden")
}

func podLayout() columns.Layout {
	return columns.Layout{
		ID:   "core~v1~Pod",
		Type: "Pod",
		Columns: []columns.ManagedColumn{
			{ID: "name", Title: "Name"},
			{ID: "namespace", Title: "Namespace"},
			{ID: "status", Title: "Status"},
			{ID: "age", Title: "Age"},
			{ID: "ip", Title: "IP", Additional: true},
			{ID: "labels", Title: "Labels", Additional: true},
		},
	}
}

func newColumnsModal(t *testing.T, layout columns.Layout, store columns.ColumnSettings) *ColumnsModal {
	t.Helper()
	m, err := NewColumnsModal(layout, store, ui.ThemeCharm(), i18n.New("en"))
	require.NoError(t, err)
	return m
}

func TestColumnsModal_Keys(t *testing.T) {
	m := newColumnsModal(t, podLayout(), settings.TableColumnsSetting(settings.NewMemoryBackend(), nil))
	ctrl := m.Controller()

	m.Update(keySpace)
	assert.True(t, ctrl.IsChecked("name"), "name is read-only")

	m.Update(keyDown)
	m.Update(keySpace)
	assert.False(t, ctrl.IsChecked("namespace"))

	for range 4 {
		m.Update(keyDown)
	}
	m.Update(keySpace)
	assert.True(t, ctrl.IsChecked("labels"))

	m.Update(keyDown)
	assert.Equal(t, 5, m.cursor, "cursor stops at the last row")

	m.Update(keyR)
	assert.True(t, ctrl.IsChecked("namespace"))
	assert.False(t, ctrl.IsChecked("labels"))
}

func TestColumnsModal_EnterCommits(t *testing.T) {
	store := settings.TableColumnsSetting(settings.NewMemoryBackend(), nil)
	m := newColumnsModal(t, podLayout(), store)

	m.Update(keyDown)
	m.Update(keySpace)
	for range 3 {
		m.Update(keyDown)
	}
	m.Update(keySpace)

	_, cmd := m.Update(keyEnter)
	require.NotNil(t, cmd)

	// Keys are ignored while saving
	_, ignored := m.Update(keyEsc)
	assert.Nil(t, ignored)

	_, cmd = m.Update(cmd())
	msgs := collect(cmd)

	assert.Contains(t, msgs, types.ColumnsCommittedMsg{
		LayoutID: "core~v1~Pod",
		IDs:      []string{"name", "status", "age", "ip"},
	})
	assert.Contains(t, msgs, types.SuccessMsg("Saved Pod columns"))
	assert.Equal(t, 1, countClosed(msgs))
	assert.True(t, m.Controller().Finished())

	saved, found, err := store.Get(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"name", "status", "age", "ip"}, saved["core~v1~Pod"])

	_, cmd = m.Update(keyEnter)
	assert.Nil(t, cmd, "closed modal ignores keys")
}

func TestColumnsModal_SavesSelectionAtEnter(t *testing.T) {
	store := settings.TableColumnsSetting(settings.NewMemoryBackend(), nil)
	m := newColumnsModal(t, podLayout(), store)

	_, cmd := m.Update(keyEnter)
	require.NotNil(t, cmd)

	// Changes after enter are not part of the save
	m.Controller().Toggle("ip")
	_, cmd = m.Update(cmd())

	assert.Contains(t, collect(cmd), types.ColumnsCommittedMsg{
		LayoutID: "core~v1~Pod",
		IDs:      []string{"name", "namespace", "status", "age"},
	})
	saved, _, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "namespace", "status", "age"}, saved["core~v1~Pod"])
}

func TestColumnsModal_CommitFailureKeepsModalOpen(t *testing.T) {
	m := newColumnsModal(t, podLayout(), failingStore{})

	_, cmd := m.Update(keyEnter)
	_, cmd = m.Update(cmd())
	msgs := collect(cmd)

	require.Len(t, msgs, 1)
	status, ok := msgs[0].(types.StatusMsg)
	require.True(t, ok)
	assert.Equal(t, types.MessageTypeError, status.Type)
	assert.Contains(t, status.Message, "forbidden")
	assert.False(t, m.Controller().Finished())

	_, cmd = m.Update(keyEsc)
	assert.Equal(t, 1, countClosed(collect(cmd)))
}

func TestColumnsModal_EscCancelsWithoutWriting(t *testing.T) {
	backend := settings.NewMemoryBackend()
	store := settings.TableColumnsSetting(backend, nil)
	m := newColumnsModal(t, podLayout(), store)

	m.Update(keyDown)
	m.Update(keySpace)

	_, cmd := m.Update(keyEsc)
	assert.Equal(t, []tea.Msg{types.ModalClosedMsg{}}, collect(cmd))
	assert.True(t, m.Controller().Finished())

	_, found, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, found)

	_, cmd = m.Update(keyEsc)
	assert.Nil(t, cmd, "closed exactly once")
}

func TestColumnsModal_InvalidLayout(t *testing.T) {
	_, err := NewColumnsModal(columns.Layout{ID: "empty"}, failingStore{}, ui.ThemeCharm(), i18n.New("en"))
	assert.ErrorIs(t, err, columns.ErrInvalidLayout)
}

func TestColumnsModal_View(t *testing.T) {
	m := newColumnsModal(t, podLayout(), failingStore{})
	m.SetSize(120, 40)

	view := m.View()
	for _, want := range []string{
		"Manage columns",
		"You can select up to 9 columns",
		"only shown when in \"All namespaces\"",
		"Default Pod columns",
		"Additional columns",
		"[x]",
		"[ ] IP",
		"r: Restore default columns",
		"enter: Save",
		"esc: Cancel",
	} {
		assert.Contains(t, view, want)
	}

	layout := podLayout()
	layout.Columns = append(layout.Columns[:1], layout.Columns[2:4]...)
	m = newColumnsModal(t, layout, failingStore{})
	assert.NotContains(t, m.View(), "All namespaces")
	assert.NotContains(t, m.View(), "Additional columns")
}

func TestColumnsModal_ViewTranslated(t *testing.T) {
	m, err := NewColumnsModal(podLayout(), failingStore{}, ui.ThemeCharm(), i18n.New("pt"))
	require.NoError(t, err)
	assert.Contains(t, m.View(), "Pode selecionar até 9 colunas")
	assert.Contains(t, m.View(), "r: Repor colunas predefinidas")
	assert.Contains(t, m.View(), "enter: Guardar")
}

func TestIntervalModal(t *testing.T) {
	minute := time.Minute
	fiveMinutes := 5 * time.Minute

	tests := []struct {
		name    string
		current *time.Duration
		keys    []tea.KeyMsg
		wantKey string
		want    *time.Duration
		label   string
	}{
		{"keep current", &minute, nil, "1m", &minute, "1 minute"},
		{"move down", &minute, []tea.KeyMsg{keyDown}, "5m", &fiveMinutes, "5 minutes"},
		{"off selected", nil, nil, "OFF_KEY", nil, "Refresh off"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := settings.RefreshIntervalSetting(settings.NewMemoryBackend(), nil)
			m := NewIntervalModal(tt.current, store, ui.ThemeCharm(), i18n.New("en"))
			m.SetSize(100, 40)

			for _, k := range tt.keys {
				m.Update(k)
			}
			_, cmd := m.Update(keyEnter)
			msgs := collect(cmd)

			assert.Contains(t, msgs, types.IntervalSelectedMsg{Key: tt.wantKey, Interval: tt.want})
			assert.Contains(t, msgs, types.InfoMsg("Refresh interval set to "+tt.label))
			assert.Equal(t, 1, countClosed(msgs))

			saved, found, err := store.Get(context.Background())
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, tt.wantKey, saved)
		})
	}
}

func TestIntervalModal_EscKeepsInterval(t *testing.T) {
	store := settings.RefreshIntervalSetting(settings.NewMemoryBackend(), nil)
	m := NewIntervalModal(nil, store, ui.ThemeCharm(), i18n.New("en"))

	_, cmd := m.Update(keyEsc)
	assert.Equal(t, []tea.Msg{types.ModalClosedMsg{}}, collect(cmd))

	_, found, _ := store.Get(context.Background())
	assert.False(t, found)
}

func TestIntervalModal_WithoutStore(t *testing.T) {
	m := NewIntervalModal(nil, nil, ui.ThemeCharm(), i18n.New("en"))
	m.Update(keyDown)

	_, cmd := m.Update(keyEnter)
	seconds := 15 * time.Second
	assert.Contains(t, collect(cmd), types.IntervalSelectedMsg{Key: "15s", Interval: &seconds})
	assert.Contains(t, m.View(), "Refresh interval")
}

type stubScreen struct {
	id, title string
}

func (s stubScreen) Init() tea.Cmd                       { return nil }
func (s stubScreen) Update(tea.Msg) (tea.Model, tea.Cmd) { return s, nil }
func (s stubScreen) View() string                        { return s.title }
func (s stubScreen) ID() string                          { return s.id }
func (s stubScreen) Title() string                       { return s.title }
func (s stubScreen) HelpText() string                    { return "" }
func (s stubScreen) Operations() []types.Operation       { return nil }

func TestScreenPickerModal(t *testing.T) {
	screens := []types.Screen{
		stubScreen{"pods", "Pods"},
		stubScreen{"deployments", "Deployments"},
		stubScreen{"nodes", "Nodes"},
	}
	m := NewScreenPickerModal(screens, "deployments", ui.ThemeCharm(), i18n.New("en"))
	m.SetSize(100, 40)
	assert.Contains(t, m.View(), "Select screen")

	m.Update(keyDown)
	_, cmd := m.Update(keyEnter)
	msgs := collect(cmd)
	assert.Contains(t, msgs, types.ScreenSwitchMsg{ScreenID: "nodes"})
	assert.Equal(t, 1, countClosed(msgs))

	_, cmd = m.Update(keyEsc)
	assert.Equal(t, []tea.Msg{types.ModalClosedMsg{}}, collect(cmd))
}

func TestNamespacePickerModal(t *testing.T) {
	m := NewNamespacePickerModal(k8s.NewDummyRepository(), "kube-system", ui.ThemeCharm(), i18n.New("en"))
	m.SetSize(100, 40)

	m.Update(m.Init()())
	assert.Len(t, m.list.Items(), 4)

	_, cmd := m.Update(keyEnter)
	assert.Contains(t, collect(cmd), types.NamespaceSwitchMsg{Namespace: "kube-system"})

	m.list.Select(0)
	_, cmd = m.Update(keyEnter)
	assert.Contains(t, collect(cmd), types.NamespaceSwitchMsg{Namespace: ""})
	assert.Contains(t, m.View(), "All namespaces")
}

func TestNamespacePickerModal_ListError(t *testing.T) {
	m := NewNamespacePickerModal(k8s.NewDummyRepository(), "", ui.ThemeCharm(), i18n.New("en"))

	_, cmd := m.Update(namespacesLoadedMsg{err: errors.New("forbidden")})
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, types.MessageTypeError, msgs[0].(types.StatusMsg).Type)
	assert.Len(t, m.list.Items(), 1, "all namespaces stays available")
}

func TestCommandPaletteModal(t *testing.T) {
	ran := false
	ops := []types.Operation{
		{ID: "copy-name", Name: "Copy name", Shortcut: "y", Execute: func() tea.Cmd {
			ran = true
			return func() tea.Msg { return types.InfoMsg("copied") }
		}},
	}
	m := NewCommandPaletteModal(ops, ui.ThemeCharm())
	m.SetSize(100, 40)
	assert.Contains(t, m.View(), "Copy name [y]")

	_, cmd := m.Update(keyEnter)
	assert.True(t, ran)
	msgs := collect(cmd)
	assert.Contains(t, msgs, types.InfoMsg("copied"))
	assert.Equal(t, 1, countClosed(msgs))
}
