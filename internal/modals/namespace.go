package modals

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/kview/internal/i18n"
	"github.com/renato0307/kview/internal/k8s"
	"github.com/renato0307/kview/internal/messages"
	"github.com/renato0307/kview/internal/types"
	"github.com/renato0307/kview/internal/ui"
)

// namespacesLoadedMsg carries the namespace names listed by Init.
type namespacesLoadedMsg struct {
	names []string
	err   error
}

type namespaceItem struct {
	name  string
	label string
}

func (i namespaceItem) FilterValue() string { return i.label }
func (i namespaceItem) Title() string       { return i.label }
func (i namespaceItem) Description() string { return "" }

// NamespacePickerModal selects the namespace resource screens list from.
// The first entry lists all namespaces.
type NamespacePickerModal struct {
	listPicker
	repo    k8s.Repository
	current string
	all     namespaceItem
}

func NewNamespacePickerModal(repo k8s.Repository, current string, theme *ui.Theme, tr i18n.Translator) *NamespacePickerModal {
	all := namespaceItem{name: "", label: tr.T("public~All namespaces")}
	m := &NamespacePickerModal{
		listPicker: newListPicker(tr.T("public~Select namespace"), []list.Item{all}, theme, false),
		repo:       repo,
		current:    current,
		all:        all,
	}
	m.list.SetFilteringEnabled(true)
	return m
}

// Init lists the namespaces of the cluster.
func (m *NamespacePickerModal) Init() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		items, err := repo.List(context.Background(), k8s.ResourceTypeNamespace, "")
		if err != nil {
			return namespacesLoadedMsg{err: err}
		}
		names := make([]string, 0, len(items))
		for _, item := range items {
			if r, ok := item.(k8s.Resource); ok {
				names = append(names, r.GetName())
			}
		}
		return namespacesLoadedMsg{names: names}
	}
}

func (m *NamespacePickerModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case namespacesLoadedMsg:
		if msg.err != nil {
			return m, messages.ErrorCmd("Failed to list namespaces: %v", msg.err)
		}
		return m, m.setNamespaces(msg.names)

	case tea.KeyMsg:
		if m.filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Confirm):
			if item, ok := m.list.SelectedItem().(namespaceItem); ok {
				return m, tea.Batch(
					messages.MsgCmd(types.NamespaceSwitchMsg{Namespace: item.name}),
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

func (m *NamespacePickerModal) setNamespaces(names []string) tea.Cmd {
	items := make([]list.Item, 0, len(names)+1)
	items = append(items, m.all)
	selected := 0
	for _, name := range names {
		if name == m.current {
			selected = len(items)
		}
		items = append(items, namespaceItem{name: name, label: name})
	}
	cmd := m.list.SetItems(items)
	m.list.Select(selected)
	return cmd
}

func (m *NamespacePickerModal) View() string {
	return m.view()
}
