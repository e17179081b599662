package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard bindings for the TUI.
type KeyMap struct {
	Quit       key.Binding
	Validate   key.Binding
	StopUp     key.Binding
	StopDown   key.Binding
	Start      key.Binding
	ToggleMode key.Binding
	PanLeft    key.Binding
	PanRight   key.Binding
	Grow       key.Binding
	Shrink     key.Binding
	Finish     key.Binding
	Export     key.Binding
	Back       key.Binding
}

// DefaultKeyMap returns the default key bindings. Setup-screen bindings
// avoid printable characters so they do not fight the expression editor.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Validate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "validate expression"),
		),
		StopUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "longer stop time"),
		),
		StopDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "shorter stop time"),
		),
		Start: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "start filtering"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle window mode"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "pan window left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "pan window right"),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "grow window"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "shrink window"),
		),
		Finish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "finish session"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export series"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to setup"),
		),
	}
}
