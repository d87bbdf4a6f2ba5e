package tui

import "github.com/charmbracelet/bubbles/key"

// chatKeys holds key bindings for the interactive session.
type chatKeys struct {
	Submit     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
}

// ShortHelp returns the bindings shown in the help bar.
func (k chatKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ScrollUp, k.ScrollDown, k.Quit}
}

// FullHelp returns the bindings grouped for expanded help.
func (k chatKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Quit},
		{k.ScrollUp, k.ScrollDown},
	}
}

// ChatKeyMap returns the key bindings for the interactive session.
func ChatKeyMap() chatKeys {
	return chatKeys{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run command"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "save and quit"),
		),
	}
}
