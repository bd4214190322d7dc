package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection / confirmation
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Item actions
	Add    key.Binding
	Delete key.Binding
	Toggle key.Binding

	// Manual refresh
	Refresh key.Binding

	// View switching
	Status        key.Binding
	Accounts      key.Binding
	Clans         key.Binding
	Reminders     key.Binding
	Notifications key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Status: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "status"),
		),
		Accounts: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "accounts"),
		),
		Clans: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "clans"),
		),
		Reminders: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "reminders"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "inbox"),
		),
	}
}
