package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme and styles for the TUI
type Theme struct {
	Name string

	// Core colors
	Primary    lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Accent     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor
	Success    lipgloss.AdaptiveColor
	Warning    lipgloss.AdaptiveColor

	// UI element colors
	Border     lipgloss.AdaptiveColor // Separator lines, borders
	Dimmed     lipgloss.AdaptiveColor // Very subtle text (shortcuts)
	Background lipgloss.AdaptiveColor // Background for overlays

	// Status message colors
	MessageInfo    lipgloss.AdaptiveColor
	MessageSuccess lipgloss.AdaptiveColor
	MessageError   lipgloss.AdaptiveColor

	// Component styles
	Table    TableStyles
	AppTitle lipgloss.Style // App title with background
	Header   lipgloss.Style
	Modal    ModalStyles
}

// TableStyles defines styles for table components
type TableStyles struct {
	Header      lipgloss.Style
	Cell        lipgloss.Style
	SelectedRow lipgloss.Style
}

// ModalStyles defines styles for modal dialogs
type ModalStyles struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Section  lipgloss.Style
	Notice   lipgloss.Style
	Cursor   lipgloss.Style
	Checked  lipgloss.Style
	Disabled lipgloss.Style
}

// ToTableStyles converts Theme.Table to bubbles table.Styles
func (t *Theme) ToTableStyles() table.Styles {
	return table.Styles{
		Header:   t.Table.Header,
		Cell:     t.Table.Cell,
		Selected: t.Table.SelectedRow,
	}
}

// palette holds the colors a theme is derived from
type palette struct {
	primary, secondary, accent, foreground, muted string
	errorColor, success, warning, border          string
	selectedFg, selectedBg, titleBg, background   string
}

func adaptive(c string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: c, Dark: c}
}

func newTheme(name string, p palette) *Theme {
	t := &Theme{Name: name}

	t.Primary = adaptive(p.primary)
	t.Secondary = adaptive(p.secondary)
	t.Accent = adaptive(p.accent)
	t.Foreground = adaptive(p.foreground)
	t.Muted = adaptive(p.muted)
	t.Error = adaptive(p.errorColor)
	t.Success = adaptive(p.success)
	t.Warning = adaptive(p.warning)
	t.Border = adaptive(p.border)
	t.Dimmed = adaptive(p.muted)
	t.Background = adaptive(p.background)

	t.MessageInfo = t.Secondary
	t.MessageSuccess = t.Success
	t.MessageError = t.Error

	t.Table.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Primary).
		Bold(true).
		PaddingLeft(1).
		PaddingRight(1)

	t.Table.Cell = lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	t.Table.SelectedRow = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.selectedFg)).
		Background(lipgloss.Color(p.selectedBg)).
		Bold(false)

	t.AppTitle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Background(lipgloss.Color(p.titleBg)).
		Bold(true)

	t.Header = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.Modal = ModalStyles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(1, 2),
		Title:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Section:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Notice:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Cursor:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Checked:  lipgloss.NewStyle().Foreground(t.Success),
		Disabled: lipgloss.NewStyle().Foreground(t.Dimmed),
	}

	return t
}

// ThemeCharm returns the default Charm theme
func ThemeCharm() *Theme {
	t := newTheme("charm", palette{
		primary: "#7571F9", secondary: "#02BF87", accent: "#F780E2",
		foreground: "252", muted: "243",
		errorColor: "#ED567A", success: "#02BF87", warning: "#FFAA00", border: "240",
		selectedFg: "229", selectedBg: "57", titleBg: "235", background: "235",
	})
	// Charm adapts to light terminals
	t.Primary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	t.Foreground = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}
	t.Background = lipgloss.AdaptiveColor{Light: "254", Dark: "235"}
	return t
}

// ThemeDracula returns a Dracula-inspired theme
func ThemeDracula() *Theme {
	return newTheme("dracula", palette{
		primary: "#bd93f9", secondary: "#8be9fd", accent: "#ff79c6",
		foreground: "#f8f8f2", muted: "#6272a4",
		errorColor: "#ff5555", success: "#50fa7b", warning: "#f1fa8c", border: "61",
		selectedFg: "#282a36", selectedBg: "#bd93f9", titleBg: "#44475a", background: "#282a36",
	})
}

// ThemeNord returns a Nord-inspired theme
func ThemeNord() *Theme {
	return newTheme("nord", palette{
		primary: "#88c0d0", secondary: "#81a1c1", accent: "#b48ead",
		foreground: "#eceff4", muted: "#4c566a",
		errorColor: "#bf616a", success: "#a3be8c", warning: "#ebcb8b", border: "#3b4252",
		selectedFg: "#2e3440", selectedBg: "#88c0d0", titleBg: "#3b4252", background: "#2e3440",
	})
}

// GetTheme returns a theme by name, defaulting to Charm
func GetTheme(name string) *Theme {
	switch name {
	case "dracula":
		return ThemeDracula()
	case "nord":
		return ThemeNord()
	default:
		return ThemeCharm()
	}
}

// AvailableThemes returns a list of available theme names
func AvailableThemes() []string {
	return []string{"charm", "dracula", "nord"}
}
