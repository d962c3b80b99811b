package internal

import "github.com/charmbracelet/bubbles/key"

// KeyMap contains the key bindings for the stopwatch screen
type KeyMap struct {
	Toggle key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "record/stop"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}
