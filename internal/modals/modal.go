// Package modals holds the dialogs kview draws over the current screen:
// column management, the refresh interval picker, and the screen, namespace
// and command pickers.
package modals

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/kview/internal/keyboard"
	"github.com/renato0307/kview/internal/ui"
)

const (
	modalWidth     = 72
	minModalHeight = 10
)

// Modal is a dialog hosted by the app on top of the current screen. A modal
// sends types.ModalClosedMsg exactly once when it is dismissed.
type Modal interface {
	tea.Model
	SetSize(width, height int)
}

// listPicker is the shared body of the list based pickers.
type listPicker struct {
	list   list.Model
	theme  *ui.Theme
	keys   keyboard.ModalKeyMap
	width  int
	height int
}

func newListPicker(title string, items []list.Item, theme *ui.Theme, describe bool) listPicker {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = describe
	if !describe {
		delegate.SetSpacing(0)
	}
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Accent).
		BorderForeground(theme.Accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.Muted).
		BorderForeground(theme.Accent)

	l := list.New(items, delegate, modalWidth-6, minModalHeight)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(describe)
	l.Styles.Title = theme.Modal.Title
	// The app owns quitting; q inside a picker must not end the program.
	l.KeyMap.Quit.SetEnabled(false)

	return listPicker{
		list:  l,
		theme: theme,
		keys:  keyboard.GetKeys().ModalKeys(),
	}
}

// filtering reports whether the list owns enter and esc right now.
func (p *listPicker) filtering() bool {
	return p.list.FilterState() == list.Filtering
}

func (p *listPicker) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *listPicker) view() string {
	// Use 80% of terminal height for modal
	height := int(float64(p.height) * 0.8)
	if height < minModalHeight {
		height = minModalHeight
	}

	// List size = modal size - border and padding
	p.list.SetSize(modalWidth-6, height-4)

	return p.theme.Modal.Frame.
		Width(modalWidth).
		Height(height).
		Render(p.list.View())
}

// frame renders free-form modal content with the theme frame.
func frame(theme *ui.Theme, width int, sections ...string) string {
	w := modalWidth
	if width > 0 && width-4 < w {
		w = max(width-4, 30)
	}
	return theme.Modal.Frame.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
