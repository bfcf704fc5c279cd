package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Toolbar
	Left  key.Binding
	Right key.Binding
	Open  key.Binding

	// Popup navigation
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding

	// Settings
	CycleGravity    key.Binding
	ToggleCascading key.Binding
	ToggleIcons     key.Binding
	ToggleRTL       key.Binding

	// Actions
	Copy key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.CycleGravity, k.ToggleCascading, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Open},
		{k.Up, k.Down, k.Select, k.Back},
		{k.CycleGravity, k.ToggleCascading, k.ToggleIcons, k.ToggleRTL},
		{k.Copy, k.Help, k.Quit},
	}
}

// PopupHelp returns the bindings that apply while a popup is showing.
func (k KeyMap) PopupHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev anchor"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next anchor"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open menu"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "right", "l"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "left", "h", "backspace"),
			key.WithHelp("esc", "back"),
		),
		CycleGravity: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "gravity"),
		),
		ToggleCascading: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cascading"),
		),
		ToggleIcons: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "icons"),
		),
		ToggleRTL: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rtl"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy last item id"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
