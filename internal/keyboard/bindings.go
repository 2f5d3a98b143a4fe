package keyboard

import "github.com/charmbracelet/bubbles/key"

// ModalKeyMap holds the bindings modals match key presses against.
type ModalKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Restore key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// ModalKeys builds the modal bindings from the key configuration.
func (k *Keys) ModalKeys() ModalKeyMap {
	return ModalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", k.Up),
			key.WithHelp("↑/"+k.Up, "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", k.Down),
			key.WithHelp("↓/"+k.Down, "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(k.Toggle),
			key.WithHelp("space", "toggle"),
		),
		Restore: key.NewBinding(
			key.WithKeys(k.Restore),
			key.WithHelp(k.Restore, "restore defaults"),
		),
		Confirm: key.NewBinding(
			key.WithKeys(k.Confirm),
			key.WithHelp(k.Confirm, "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(k.Back),
			key.WithHelp(k.Back, "cancel"),
		),
	}
}

// GlobalKeyMap holds the bindings the app handles outside modals.
type GlobalKeyMap struct {
	Quit         key.Binding
	Refresh      key.Binding
	Filter       key.Binding
	Columns      key.Binding
	Interval     key.Binding
	ScreenPicker key.Binding
	Namespace    key.Binding
	Palette      key.Binding
	CopyName     key.Binding
	Help         key.Binding
}

// GlobalKeys builds the app bindings from the key configuration.
func (k *Keys) GlobalKeys() GlobalKeyMap {
	return GlobalKeyMap{
		Quit:         key.NewBinding(key.WithKeys(k.Quit, "q"), key.WithHelp("q", "quit")),
		Refresh:      key.NewBinding(key.WithKeys(k.Refresh), key.WithHelp(k.Refresh, "refresh")),
		Filter:       key.NewBinding(key.WithKeys(k.FilterActivate), key.WithHelp(k.FilterActivate, "filter")),
		Columns:      key.NewBinding(key.WithKeys(k.Columns), key.WithHelp(k.Columns, "columns")),
		Interval:     key.NewBinding(key.WithKeys(k.Interval), key.WithHelp(k.Interval, "interval")),
		ScreenPicker: key.NewBinding(key.WithKeys(k.ScreenPicker), key.WithHelp(k.ScreenPicker, "screens")),
		Namespace:    key.NewBinding(key.WithKeys(k.Namespace), key.WithHelp(k.Namespace, "namespace")),
		Palette:      key.NewBinding(key.WithKeys(k.Palette), key.WithHelp(k.Palette, "commands")),
		CopyName:     key.NewBinding(key.WithKeys(k.CopyName), key.WithHelp(k.CopyName, "copy name")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// ShortHelp renders the bindings as "key: action" pairs.
func ShortHelp(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + ": " + h.Desc
	}
	return out
}
