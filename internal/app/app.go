package app

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/kview/internal/components"
	"github.com/renato0307/kview/internal/interval"
	"github.com/renato0307/kview/internal/keyboard"
	"github.com/renato0307/kview/internal/logging"
	"github.com/renato0307/kview/internal/messages"
	"github.com/renato0307/kview/internal/modals"
	"github.com/renato0307/kview/internal/screens"
	"github.com/renato0307/kview/internal/types"
)

// AppName is shown in the header until a screen is active.
const AppName = "kview"

// InitialScreenID is the screen shown at startup.
const InitialScreenID = "pods"

type Model struct {
	state         types.AppState
	ctx           *types.AppContext
	registry      *types.ScreenRegistry
	currentScreen types.Screen
	header        *components.Header
	layout        *components.Layout
	filter        *components.FilterBar
	userMessage   *components.UserMessage
	modal         modals.Modal
	keys          keyboard.GlobalKeyMap
	interval      *time.Duration
}

// NewModel builds the app with every resource screen registered. refresh is
// the interval used until the stored one is loaded; nil disables refresh.
func NewModel(ctx *types.AppContext, refresh *time.Duration) Model {
	registry := types.NewScreenRegistry()
	for _, screen := range screens.NewScreens(ctx) {
		registry.Register(screen)
	}
	registry.Register(screens.NewHelpScreen(ctx))

	initialScreen, _ := registry.Get(InitialScreenID)

	header := components.NewHeader(AppName, ctx.Theme, ctx.Translator)
	header.SetContext(ctx.Repo.GetContext())
	header.SetScreenTitle(initialScreen.Title())
	header.SetNamespace(ctx.Namespace)
	header.SetWidth(80)

	filter := components.NewFilterBar(ctx.Theme)
	filter.SetWidth(80)

	userMessage := components.NewUserMessage(ctx.Theme)
	userMessage.SetWidth(80)

	m := Model{
		state: types.AppState{
			CurrentScreen: InitialScreenID,
			Width:         80,
			Height:        24,
		},
		ctx:           ctx,
		registry:      registry,
		currentScreen: initialScreen,
		header:        header,
		layout:        components.NewLayout(80, 24, ctx.Theme),
		filter:        filter,
		userMessage:   userMessage,
		keys:          keyboard.GetKeys().GlobalKeys(),
		interval:      refresh,
	}
	m.updateIntervalLabel()
	m.resizeScreen()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadSettings()}
	if screen, ok := m.currentScreen.(*screens.ConfigScreen); ok {
		cmds = append(cmds, screen.Refresh(), screen.SetInterval(m.interval))
	}
	return tea.Batch(cmds...)
}

// loadSettings reads the stored column choices and refresh interval.
func (m Model) loadSettings() tea.Cmd {
	columnsSetting := m.ctx.Columns
	intervalSetting := m.ctx.Interval
	return func() tea.Msg {
		ctx := context.Background()
		msg := types.SettingsLoadedMsg{}

		var errs []error
		if columnsSetting != nil {
			cols, _, err := columnsSetting.Get(ctx)
			if err != nil {
				errs = append(errs, err)
			}
			msg.Columns = cols
		}
		if intervalSetting != nil {
			key, found, err := intervalSetting.Get(ctx)
			if err != nil {
				errs = append(errs, err)
			}
			if found {
				msg.IntervalKey = key
			}
		}
		msg.Err = errors.Join(errs...)
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.layout.SetSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)
		m.filter.SetWidth(msg.Width)
		m.userMessage.SetWidth(msg.Width)
		if m.modal != nil {
			m.modal.SetSize(msg.Width, msg.Height)
		}
		m.resizeScreen()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case types.SettingsLoadedMsg:
		return m, m.applySettings(msg)

	case types.ScreenSwitchMsg:
		return m, m.switchScreen(msg.ScreenID)

	case types.OpenModalMsg:
		return m, m.openModal(msg.Kind)

	case types.ModalClosedMsg:
		m.modal = nil
		return m, nil

	case types.ColumnsCommittedMsg:
		for _, screen := range m.configScreens() {
			if screen.Config().LayoutID == msg.LayoutID {
				screen.SetCommittedColumns(msg.IDs)
			}
		}
		m.resizeScreen()
		return m, nil

	case types.IntervalSelectedMsg:
		logging.Info("Refresh interval changed", "interval", msg.Key)
		m.interval = msg.Interval
		m.updateIntervalLabel()
		if screen, ok := m.currentScreen.(*screens.ConfigScreen); ok {
			return m, screen.SetInterval(m.interval)
		}
		return m, nil

	case types.NamespaceSwitchMsg:
		return m, m.switchNamespace(msg.Namespace)

	case types.RefreshCompleteMsg:
		if msg.ScreenID != m.state.CurrentScreen {
			return m, nil
		}
		m.userMessage.StopLoading()
		m.state.LastRefresh = time.Now()
		m.state.RefreshTime = msg.Duration
		m.header.SetLastRefresh(m.state.LastRefresh)
		m.header.SetItemCount(msg.Count)
		return m, nil

	case types.StatusMsg:
		m.userMessage.SetMessage(msg.Message, msg.Type)
		return m, m.userMessage.ClearCmd()

	case types.ClearStatusMsg:
		m.userMessage.Clear(msg.MessageID)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.userMessage, cmd = m.userMessage.Update(msg)
		return m, cmd
	}

	// Results of commands started by the modal or the screen
	var cmds []tea.Cmd
	if m.modal != nil {
		model, cmd := m.modal.Update(msg)
		m.modal = model.(modals.Modal)
		cmds = append(cmds, cmd)
	}
	model, cmd := m.currentScreen.Update(msg)
	m.currentScreen = model.(types.Screen)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.modal != nil {
		model, cmd := m.modal.Update(msg)
		m.modal = model.(modals.Modal)
		return m, cmd
	}

	if m.filter.IsActive() {
		return m, m.filter.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Filter):
		return m, m.filter.Activate()
	case key.Matches(msg, m.keys.Columns):
		return m, m.openModal(types.ModalColumns)
	case key.Matches(msg, m.keys.Interval):
		return m, m.openModal(types.ModalInterval)
	case key.Matches(msg, m.keys.ScreenPicker):
		return m, m.openModal(types.ModalScreenPicker)
	case key.Matches(msg, m.keys.Namespace):
		return m, m.openModal(types.ModalNamespace)
	case key.Matches(msg, m.keys.Palette):
		return m, m.openModal(types.ModalCommandPalette)
	case key.Matches(msg, m.keys.Help):
		return m, m.switchScreen(screens.HelpScreenID)
	case key.Matches(msg, m.keys.Refresh), key.Matches(msg, m.keys.CopyName):
		return m, m.runOperation(msg.String())
	case msg.Type == tea.KeyEsc && m.filter.Value() != "":
		m.filter.Reset()
		return m, messages.MsgCmd(types.ClearFilterMsg{})
	}

	model, cmd := m.currentScreen.Update(msg)
	m.currentScreen = model.(types.Screen)
	return m, cmd
}

// runOperation runs the current screen operation bound to shortcut.
func (m Model) runOperation(shortcut string) tea.Cmd {
	for _, op := range m.currentScreen.Operations() {
		if op.Shortcut == shortcut {
			return op.Execute()
		}
	}
	return nil
}

func (m *Model) openModal(kind types.ModalKind) tea.Cmd {
	theme, tr := m.ctx.Theme, m.ctx.Translator

	var modal modals.Modal
	var cmd tea.Cmd
	switch kind {
	case types.ModalColumns:
		screen, ok := m.currentScreen.(*screens.ConfigScreen)
		if !ok || !screen.Config().Managed() {
			return messages.InfoCmd("%s has no column settings", m.currentScreen.Title())
		}
		if m.ctx.Columns == nil {
			return messages.ErrorCmd("Column settings are not available")
		}
		columnsModal, err := modals.NewColumnsModal(screen.Layout(), m.ctx.Columns, theme, tr)
		if err != nil {
			logging.Error("Cannot open column management", "screen", screen.ID(), "error", err)
			return messages.ErrorCmd("%v", err)
		}
		modal = columnsModal
	case types.ModalInterval:
		modal = modals.NewIntervalModal(m.interval, m.ctx.Interval, theme, tr)
	case types.ModalScreenPicker:
		modal = modals.NewScreenPickerModal(m.registry.All(), m.state.CurrentScreen, theme, tr)
	case types.ModalNamespace:
		namespaceModal := modals.NewNamespacePickerModal(m.ctx.Repo, m.ctx.Namespace, theme, tr)
		cmd = namespaceModal.Init()
		modal = namespaceModal
	case types.ModalCommandPalette:
		modal = modals.NewCommandPaletteModal(m.currentScreen.Operations(), theme)
	default:
		return nil
	}

	modal.SetSize(m.state.Width, m.state.Height)
	m.modal = modal
	return cmd
}

// applySettings applies the stored settings read at startup.
func (m *Model) applySettings(msg types.SettingsLoadedMsg) tea.Cmd {
	var cmds []tea.Cmd
	if msg.Err != nil {
		logging.Warn("Failed to load user settings", "error", msg.Err)
		cmds = append(cmds, messages.ErrorCmd("Failed to load user settings: %v", msg.Err))
	}

	if msg.Columns != nil {
		for _, screen := range m.configScreens() {
			if screen.Config().Managed() {
				screen.SetCommittedColumns(msg.Columns[screen.Config().LayoutID])
			}
		}
		m.resizeScreen()
	}

	if msg.IntervalKey != "" {
		d, err := interval.Parse(msg.IntervalKey)
		if err != nil {
			logging.Warn("Ignoring stored refresh interval", "key", msg.IntervalKey, "error", err)
		} else {
			m.interval = d
			m.updateIntervalLabel()
			if screen, ok := m.currentScreen.(*screens.ConfigScreen); ok {
				cmds = append(cmds, screen.SetInterval(m.interval))
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) switchScreen(id string) tea.Cmd {
	next, ok := m.registry.Get(id)
	if !ok {
		return messages.ErrorCmd("Unknown screen: %s", id)
	}
	if id == m.state.CurrentScreen {
		return nil
	}
	logging.Debug("Switching screen", "from", m.state.CurrentScreen, "to", id)

	// Only the visible screen refreshes periodically
	if previous, ok := m.currentScreen.(*screens.ConfigScreen); ok {
		previous.SetInterval(nil)
	}

	m.currentScreen = next
	m.state.CurrentScreen = id
	m.header.SetScreenTitle(next.Title())
	m.header.SetItemCount(0)

	var cmds []tea.Cmd
	if m.filter.Value() != "" {
		m.filter.Reset()
	}
	if screen, ok := next.(*screens.ConfigScreen); ok {
		screen.SetFilter("")
		cmds = append(cmds, screen.Refresh(), screen.SetInterval(m.interval))
	}
	m.resizeScreen()
	return tea.Batch(cmds...)
}

func (m *Model) switchNamespace(namespace string) tea.Cmd {
	logging.Info("Namespace changed", "namespace", namespace)
	m.ctx.Namespace = namespace
	m.header.SetNamespace(namespace)
	m.header.SetItemCount(0)

	var cmd tea.Cmd
	for _, screen := range m.configScreens() {
		refresh := screen.SetNamespace(namespace)
		if screen.ID() == m.state.CurrentScreen {
			cmd = refresh
		}
	}
	m.resizeScreen()
	if cmd == nil {
		return nil
	}

	// Cleared when the screen reports the refresh
	loading := types.LoadingMsg("Loading " + m.currentScreen.Title())
	m.userMessage.SetMessage(loading.Message, loading.Type)
	return tea.Batch(cmd, m.userMessage.ClearCmd())
}

func (m *Model) updateIntervalLabel() {
	key, err := interval.SelectedKey(m.interval)
	if err != nil {
		m.header.SetInterval(interval.FormatDuration(*m.interval))
		return
	}
	m.header.SetInterval(interval.Label(m.ctx.Translator, key))
}

func (m *Model) resizeScreen() {
	bodyHeight := m.layout.CalculateBodyHeight()
	if screenWithSize, ok := m.currentScreen.(interface{ SetSize(int, int) }); ok {
		screenWithSize.SetSize(m.state.Width, bodyHeight)
	}
}

func (m Model) configScreens() []*screens.ConfigScreen {
	var result []*screens.ConfigScreen
	for _, screen := range m.registry.All() {
		if cs, ok := screen.(*screens.ConfigScreen); ok {
			result = append(result, cs)
		}
	}
	return result
}

func (m Model) View() string {
	if m.modal != nil {
		return m.layout.Overlay(m.modal.View())
	}

	var filter string
	if m.filter.IsActive() || m.filter.Value() != "" {
		filter = m.filter.View()
	}

	help := keyboard.ShortHelp(
		m.keys.Filter,
		m.keys.Columns,
		m.keys.Interval,
		m.keys.Namespace,
		m.keys.ScreenPicker,
		m.keys.Help,
		m.keys.Quit,
	)

	return m.layout.Render(
		m.header.View(),
		m.currentScreen.View(),
		filter,
		help,
		m.userMessage.View(),
	)
}
