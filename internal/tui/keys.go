package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the budget screen.
type KeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding

	// List navigation, active when the expense list has focus.
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding

	Reset key.Binding
	Quit  key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "add expense"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete", "backspace"),
		key.WithHelp("d", "delete expense"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "reset budget"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// formHelp is shown while a text field has focus.
func (k KeyMap) formHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.Reset, k.Quit}
}

// listHelp is shown while the expense list has focus.
func (k KeyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.NextField, k.Reset, k.Quit}
}
