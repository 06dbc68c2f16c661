package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts. Printable keys belong to the scan
// field, so every binding here is a control or function key.
type KeyMap struct {
	Clear key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Clear: key.NewBinding(
			key.WithKeys("enter", "ctrl+l"),
			key.WithHelp("Enter", "clear field"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("Esc/Ctrl+C", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Clear, k.Help, k.Quit},
	}
}
