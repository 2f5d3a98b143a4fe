package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/kview/internal/types"
	"github.com/renato0307/kview/internal/ui"
)

// UserMessage manages and displays user-facing status messages (success,
// errors, info, loading) and the spinner of loading messages.
type UserMessage struct {
	message     string
	messageType types.MessageType
	messageID   int
	width       int
	theme       *ui.Theme
	spinner     spinner.Model
}

// NewUserMessage creates a new user message component
func NewUserMessage(theme *ui.Theme) *UserMessage {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"✽", "✻", "✶", "·", "✢"},
		FPS:    time.Second / 6,
	}
	s.Style = lipgloss.NewStyle()

	return &UserMessage{
		theme:   theme,
		spinner: s,
	}
}

// SetMessage sets the message text and type and returns the id a later
// ClearStatusMsg must carry to clear it.
func (um *UserMessage) SetMessage(msg string, msgType types.MessageType) int {
	um.message = msg
	um.messageType = msgType
	um.messageID++
	return um.messageID
}

// Message returns the current text.
func (um *UserMessage) Message() string {
	return um.message
}

// Type returns the current message type.
func (um *UserMessage) Type() types.MessageType {
	return um.messageType
}

// ClearCmd schedules clearing the current message after
// MessageDisplayDuration. Loading messages stay until replaced.
func (um *UserMessage) ClearCmd() tea.Cmd {
	if um.messageType == types.MessageTypeLoading {
		return um.spinner.Tick
	}
	id := um.messageID
	return tea.Tick(MessageDisplayDuration, func(time.Time) tea.Msg {
		return types.ClearStatusMsg{MessageID: id}
	})
}

// Clear clears the message if it is still the one identified by id.
func (um *UserMessage) Clear(id int) {
	if id != um.messageID {
		return
	}
	um.message = ""
	um.messageType = types.MessageTypeInfo
}

// StopLoading clears the current message if it is a loading message.
func (um *UserMessage) StopLoading() {
	if um.IsLoadingMessage() {
		um.Clear(um.messageID)
	}
}

// IsLoadingMessage returns true if the current message is a loading message
func (um *UserMessage) IsLoadingMessage() bool {
	return um.messageType == types.MessageTypeLoading
}

// SetWidth sets the component width
func (um *UserMessage) SetWidth(width int) {
	um.width = width
}

// GetHeight returns the height (always 1 line to reserve space)
func (um *UserMessage) GetHeight() int {
	return 1
}

// Update handles spinner updates for loading messages
func (um *UserMessage) Update(msg tea.Msg) (*UserMessage, tea.Cmd) {
	if um.messageType == types.MessageTypeLoading {
		var cmd tea.Cmd
		um.spinner, cmd = um.spinner.Update(msg)
		return um, cmd
	}
	return um, nil
}

// View renders the current message, or an empty line to reserve space.
func (um *UserMessage) View() string {
	if um.message == "" {
		return lipgloss.NewStyle().Width(um.width).Render("")
	}

	var spinnerView string
	if um.messageType == types.MessageTypeLoading {
		spinnerView = um.spinner.View()
	}
	return RenderMessage(um.message, um.messageType, um.theme, spinnerView, um.width)
}

// RenderMessage renders a user message with styling based on its type.
// Long messages are truncated to fit the terminal width.
func RenderMessage(text string, msgType types.MessageType, theme *ui.Theme, spinnerView string, width int) string {
	if text == "" {
		return ""
	}

	// terminal width - prefix (2) - margin (5)
	maxMessageLength := width - 7
	if maxMessageLength < 20 {
		maxMessageLength = 20
	}
	if runes := []rune(text); len(runes) > maxMessageLength {
		text = string(runes[:maxMessageLength-1]) + "…"
	}

	circleBullet := "⏺ "
	prefix := circleBullet
	var messageColor lipgloss.AdaptiveColor

	switch msgType {
	case types.MessageTypeSuccess:
		messageColor = theme.MessageSuccess
	case types.MessageTypeError:
		messageColor = theme.MessageError
	case types.MessageTypeLoading:
		messageColor = theme.Muted
		if spinnerView != "" {
			prefix = spinnerView + " "
		}
	default:
		messageColor = theme.MessageInfo
	}

	return lipgloss.NewStyle().Foreground(messageColor).Render(prefix + text)
}
