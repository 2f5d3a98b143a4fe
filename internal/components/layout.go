package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/kview/internal/ui"
)

type Layout struct {
	width  int
	height int
	theme  *ui.Theme
}

func NewLayout(width, height int, theme *ui.Theme) *Layout {
	return &Layout{
		width:  width,
		height: height,
		theme:  theme,
	}
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

func (l *Layout) Width() int  { return l.width }
func (l *Layout) Height() int { return l.height }

// CalculateBodyHeight returns the available height for the body content
func (l *Layout) CalculateBodyHeight() int {
	bodyHeight := l.height - ReservedLines
	if bodyHeight < MinBodyHeight {
		bodyHeight = MinBodyHeight
	}
	return bodyHeight
}

// Render builds the full layout
func (l *Layout) Render(header, body, filter, help, message string) string {
	helpStyle := lipgloss.NewStyle().
		Foreground(l.theme.Dimmed).
		Padding(0, 1)

	sections := []string{}
	if header != "" {
		sections = append(sections, header, "")
	}
	if body != "" {
		sections = append(sections, body)
	}
	sections = append(sections, filter)
	if help != "" {
		sections = append(sections, helpStyle.Render(help))
	}
	sections = append(sections, message)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Overlay centers a modal over the screen area.
func (l *Layout) Overlay(modal string) string {
	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, modal)
}
