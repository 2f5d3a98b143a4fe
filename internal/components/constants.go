package components

import "time"

// UI component constants
const (
	// MessageDisplayDuration is how long status messages (success, error,
	// info) are displayed before automatically clearing.
	MessageDisplayDuration = 5 * time.Second

	// ReservedLines is the number of lines taken by the header, the blank
	// line below it, the filter line, the help line and the message line.
	ReservedLines = 5

	// MinBodyHeight keeps the table usable on tiny terminals.
	MinBodyHeight = 3
)
