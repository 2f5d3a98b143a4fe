package keyboard

// Keys holds all keyboard shortcut configurations for kview
type Keys struct {
	// Input
	FilterActivate string // Activate filter mode

	// Modals
	Columns      string // Manage columns of the current table
	Interval     string // Pick the refresh interval
	ScreenPicker string // Switch resource screen
	Namespace    string // Pick the namespace
	Palette      string // Run an operation of the current screen

	// Resource Operations
	CopyName string // Copy the selected resource name

	// Column management modal
	Toggle  string // Toggle the column under the cursor
	Restore string // Restore default columns
	Confirm string // Save and close

	// Navigation
	Up         string // Move selection up
	Down       string // Move selection down
	JumpTop    string // Jump to top
	JumpBottom string // Jump to bottom

	// Global
	Quit    string // Quit application
	Refresh string // Refresh data
	Back    string // Back/clear filter/close modal
}

// Default returns the default keyboard configuration
func Default() *Keys {
	return &Keys{
		FilterActivate: "/",

		Columns:      "c",
		Interval:     "i",
		ScreenPicker: ":",
		Namespace:    "n",
		Palette:      "ctrl+p",

		CopyName: "y",

		Toggle:  " ",
		Restore: "r",
		Confirm: "enter",

		Up:         "k",
		Down:       "j",
		JumpTop:    "g",
		JumpBottom: "G",

		Quit:    "ctrl+c",
		Refresh: "ctrl+r",
		Back:    "esc",
	}
}

// GetKeys returns the current keyboard configuration
func GetKeys() *Keys {
	return Default()
}
