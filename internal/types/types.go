package types

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/kview/internal/settings"
)

// Screen represents a view in the application
type Screen interface {
	tea.Model
	ID() string
	Title() string
	HelpText() string
	Operations() []Operation
}

// Operation represents an action that can be executed on a screen
type Operation struct {
	ID          string
	Name        string
	Description string
	Shortcut    string
	Execute     func() tea.Cmd
}

// ScreenRegistry manages available screens
type ScreenRegistry struct {
	screens map[string]Screen
	order   []string
}

func NewScreenRegistry() *ScreenRegistry {
	return &ScreenRegistry{
		screens: make(map[string]Screen),
		order:   []string{},
	}
}

func (r *ScreenRegistry) Register(screen Screen) {
	id := screen.ID()
	if _, exists := r.screens[id]; !exists {
		r.order = append(r.order, id)
	}
	r.screens[id] = screen
}

func (r *ScreenRegistry) Get(id string) (Screen, bool) {
	screen, ok := r.screens[id]
	return screen, ok
}

func (r *ScreenRegistry) All() []Screen {
	result := make([]Screen, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.screens[id])
	}
	return result
}

// AppState holds shared application state
type AppState struct {
	CurrentScreen string
	LastRefresh   time.Time
	RefreshTime   time.Duration
	Width         int
	Height        int
}

// Messages
type ScreenSwitchMsg struct {
	ScreenID string
}

type RefreshCompleteMsg struct {
	ScreenID string
	Duration time.Duration
	Count    int
}

// MessageType defines the type of status message
type MessageType int

const (
	MessageTypeInfo MessageType = iota
	MessageTypeSuccess
	MessageTypeError
	MessageTypeLoading // Loading state with spinner
)

type StatusMsg struct {
	Message string
	Type    MessageType
}

type ClearStatusMsg struct {
	MessageID int // Only clear if this matches the current message ID
}

// InfoMsg creates an info status message
func InfoMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeInfo}
}

// SuccessMsg creates a success status message
func SuccessMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeSuccess}
}

// ErrorStatusMsg creates an error status message
func ErrorStatusMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeError}
}

// LoadingMsg creates a loading status message (with spinner)
func LoadingMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeLoading}
}

type FilterUpdateMsg struct {
	Filter string
}

type ClearFilterMsg struct{}

// Modal messages

// ModalKind identifies the modal to open
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalColumns
	ModalInterval
	ModalScreenPicker
	ModalNamespace
	ModalCommandPalette
)

// OpenModalMsg asks the app to open a modal over the current screen
type OpenModalMsg struct {
	Kind ModalKind
}

// ModalClosedMsg is sent exactly once when a modal is dismissed
type ModalClosedMsg struct{}

// ColumnsCommittedMsg carries the ordered column ids stored for a layout
type ColumnsCommittedMsg struct {
	LayoutID string
	IDs      []string
}

// IntervalSelectedMsg carries the refresh interval chosen by the user.
// A nil Interval disables automatic refresh.
type IntervalSelectedMsg struct {
	Key      string
	Interval *time.Duration
}

// NamespaceSwitchMsg selects the namespace resource screens list from.
// An empty Namespace lists all namespaces.
type NamespaceSwitchMsg struct {
	Namespace string
}

// SettingsLoadedMsg delivers the persisted user settings read at startup.
// IntervalKey is empty when no interval was stored.
type SettingsLoadedMsg struct {
	Columns     settings.TableColumns
	IntervalKey string
	Err         error
}
