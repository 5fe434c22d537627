package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next      key.Binding
	prev      key.Binding
	enter     key.Binding
	left      key.Binding
	right     key.Binding
	edit      key.Binding
	remove    key.Binding
	back      key.Binding
	up        key.Binding
	down      key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev option")),
		right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next option")),
		edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		remove:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.forceQuit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.enter},
		{k.up, k.down, k.left, k.right},
		{k.edit, k.remove, k.back},
		{k.quit, k.forceQuit},
	}
}

// helpFor returns the bindings relevant to the focused stop.
func (k keyMap) helpFor(f focusStop, editing bool) []key.Binding {
	save := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
	cancel := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))

	switch {
	case editing:
		return []key.Binding{save, cancel, k.forceQuit}
	case f == focusTable:
		return []key.Binding{k.up, k.down, k.edit, k.remove, k.next, k.quit}
	case f == focusCity, f == focusState:
		return []key.Binding{k.left, k.right, k.next, k.prev, k.back, k.forceQuit}
	default:
		return []key.Binding{k.enter, k.next, k.prev, k.back, k.forceQuit}
	}
}
