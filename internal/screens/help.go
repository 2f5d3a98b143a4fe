package screens

import (
	"github.com/renato0307/kview/internal/types"
)

const (
	// HelpScreenID is the screen identifier for the help screen
	HelpScreenID = "help"
)

// HelpEntry represents a keyboard shortcut entry
type HelpEntry struct {
	Section     string
	Shortcut    string
	Description string
}

// getHelpEntries returns all keyboard shortcuts organized by section
func getHelpEntries() []HelpEntry {
	return []HelpEntry{
		{"Navigation", "/", "Search/filter current list"},
		{"Navigation", "!text", "Hide rows matching text"},
		{"Navigation", ":", "Switch resource screen"},
		{"Navigation", "n", "Pick namespace"},
		{"Navigation", "↑/↓ or j/k", "Move selection up/down"},
		{"Navigation", "g / G", "Jump to top/bottom"},

		{"Resources", "y", "Copy resource name"},
		{"Resources", "ctrl+r", "Refresh now"},
		{"Resources", "i", "Pick refresh interval"},

		{"Columns", "c", "Manage columns"},
		{"Columns", "space", "Toggle column"},
		{"Columns", "r", "Restore default columns"},
		{"Columns", "enter", "Save columns"},
		{"Columns", "esc", "Cancel"},

		{"Global", "q or ctrl+c", "Quit application"},
		{"Global", "?", "Show this help"},
		{"Global", "ctrl+p", "Run a command of the current screen"},
	}
}

// GetHelpScreenConfig returns the configuration for the help screen
func GetHelpScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:    HelpScreenID,
		Title: "Help - Keyboard Shortcuts",
		Columns: []ColumnConfig{
			{ID: "section", Field: "Section", Title: "Section", Width: 12, Priority: 1},
			{ID: "shortcut", Field: "Shortcut", Title: "Shortcut", Width: 16, Priority: 1},
			{ID: "description", Field: "Description", Title: "Description", Width: 0, Priority: 1},
		},
		SearchFields: []string{"Section", "Shortcut", "Description"},
		Items: func() []any {
			entries := getHelpEntries()
			items := make([]any, len(entries))
			for i, entry := range entries {
				items[i] = entry
			}
			return items
		},
	}
}

// NewHelpScreen creates the keyboard shortcut screen.
func NewHelpScreen(ctx *types.AppContext) *ConfigScreen {
	return NewConfigScreen(GetHelpScreenConfig(), ctx)
}
