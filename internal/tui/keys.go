package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings of the timer screen.
type KeyMap struct {
	Pause   key.Binding
	End     key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause/resume"),
		),
		End: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "end"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "end timer"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "keep going"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Pause, keys.End, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{keys.ShortHelp(), {keys.Confirm, keys.Cancel}}
}

type dialogKeys struct {
	keys KeyMap
}

func (dialog dialogKeys) ShortHelp() []key.Binding {
	return []key.Binding{dialog.keys.Confirm, dialog.keys.Cancel}
}

func (dialog dialogKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{dialog.ShortHelp()}
}
