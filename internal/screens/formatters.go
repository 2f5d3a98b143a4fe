package screens

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

// writeClipboard is replaced in tests, CI machines have no clipboard.
var writeClipboard = clipboard.WriteAll

// FormatDuration formats a time.Duration as a human-readable age
func FormatDuration(val any) string {
	d, ok := val.(time.Duration)
	if !ok {
		return fmt.Sprint(val)
	}

	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}

// FormatBool renders true as "Yes" and false as "No"
func FormatBool(val any) string {
	b, ok := val.(bool)
	if !ok {
		return fmt.Sprint(val)
	}
	if b {
		return "Yes"
	}
	return "No"
}

// FormatEmpty renders empty strings as "<none>"
func FormatEmpty(val any) string {
	s := fmt.Sprint(val)
	if s == "" {
		return "<none>"
	}
	return s
}
