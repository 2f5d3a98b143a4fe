package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/kview/internal/i18n"
	"github.com/renato0307/kview/internal/ui"
)

type Header struct {
	appName     string
	contextName string
	screenTitle string
	namespace   string
	interval    string
	itemCount   int
	lastRefresh time.Time
	width       int
	theme       *ui.Theme
	tr          i18n.Translator
	now         func() time.Time
}

func NewHeader(appName string, theme *ui.Theme, tr i18n.Translator) *Header {
	return &Header{
		appName: appName,
		theme:   theme,
		tr:      tr,
		now:     time.Now,
	}
}

func (h *Header) SetContext(name string) {
	h.contextName = name
}

func (h *Header) SetScreenTitle(title string) {
	h.screenTitle = title
}

// SetNamespace sets the listed namespace. Empty means all namespaces.
func (h *Header) SetNamespace(namespace string) {
	h.namespace = namespace
}

// SetInterval sets the translated refresh interval label.
func (h *Header) SetInterval(label string) {
	h.interval = label
}

func (h *Header) SetItemCount(count int) {
	h.itemCount = count
}

func (h *Header) SetLastRefresh(t time.Time) {
	h.lastRefresh = t
}

func (h *Header) SetWidth(width int) {
	h.width = width
}

func (h *Header) View() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.theme.Primary)

	timingStyle := lipgloss.NewStyle().
		Foreground(h.theme.Muted).
		Padding(0, 1)

	// "kind-dev • Pods • namespace: default • 47 items"
	leftParts := []string{}
	if h.contextName != "" {
		leftParts = append(leftParts, h.contextName)
	}
	if h.screenTitle != "" {
		leftParts = append(leftParts, h.screenTitle)
	}
	if h.namespace != "" {
		leftParts = append(leftParts, fmt.Sprintf("namespace: %s", h.namespace))
	} else {
		leftParts = append(leftParts, h.tr.T("public~All namespaces"))
	}
	if h.itemCount > 0 {
		leftParts = append(leftParts, fmt.Sprintf("%d items", h.itemCount))
	}

	leftText := strings.Join(leftParts, " • ")
	if h.screenTitle == "" && h.contextName == "" {
		leftText = h.appName
	}
	left := headerStyle.Render(leftText)

	// "15 seconds • 2s ago"
	rightParts := []string{}
	if h.interval != "" {
		rightParts = append(rightParts, h.interval)
	}
	if !h.lastRefresh.IsZero() {
		rightParts = append(rightParts, formatElapsed(h.now().Sub(h.lastRefresh)))
	}
	var right string
	if len(rightParts) > 0 {
		right = timingStyle.Render(strings.Join(rightParts, " • "))
	}

	spacing := h.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	spacer := lipgloss.NewStyle().
		Width(spacing).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)
}

func formatElapsed(elapsed time.Duration) string {
	switch {
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds ago", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	}
}
