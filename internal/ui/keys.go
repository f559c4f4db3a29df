package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings of the profile screen.
type keyMap struct {
	// Viewing
	Quit     key.Binding
	Edit     key.Binding
	Refresh  key.Binding
	SwitchID key.Binding

	// Editing
	Save     key.Binding
	Cancel   key.Binding
	Next     key.Binding
	Previous key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		SwitchID: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "switch user"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Previous: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
	}
}

func (k keyMap) viewHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Refresh, k.SwitchID, k.Quit}
}

func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.Save, k.Next, k.Cancel}
}

func (k keyMap) promptHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel}
}
