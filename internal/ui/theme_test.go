package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	for _, name := range AvailableThemes() {
		t.Run(name, func(t *testing.T) {
			theme := GetTheme(name)
			assert.Equal(t, name, theme.Name)
			assert.Equal(t, theme.Error, theme.MessageError)
			assert.Equal(t, theme.Success, theme.MessageSuccess)
		})
	}

	assert.Equal(t, "charm", GetTheme("does-not-exist").Name)
}

func TestTheme_ToTableStyles(t *testing.T) {
	theme := ThemeNord()
	styles := theme.ToTableStyles()

	assert.Equal(t, theme.Table.Header.Render("x"), styles.Header.Render("x"))
	assert.Equal(t, theme.Table.SelectedRow.Render("x"), styles.Selected.Render("x"))
}
