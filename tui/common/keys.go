package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the Normal-mode bindings shared by all views.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding // enter: open post / expand comment
	Quit        key.Binding // q: quit on Home, back elsewhere
	Back        key.Binding // esc
	ForceQuit   key.Binding // ctrl+c: quit from any view
	Search      key.Binding // / or s: start editing the search text
	CycleSort   key.Binding // o: search results only
	CycleTime   key.Binding // t: search results only
	ScrollDown  key.Binding // d: post detail only
	ScrollUp    key.Binding // u: post detail only
	Refresh     key.Binding // r: reload the home feed
	OpenBrowser key.Binding // b
	CopyURL     key.Binding // y
}

// EditKeyMap defines the bindings active while editing the search text.
// Printable runes not bound here are inserted at the cursor.
type EditKeyMap struct {
	Submit    key.Binding
	Cancel    key.Binding
	Backspace key.Binding
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
}

// DefaultKeyMap returns the default Normal-mode key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view / expand"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit / back"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "search"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort"),
		),
		CycleTime: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "time"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "scroll up"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		OpenBrowser: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "open in browser"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
	}
}

// DefaultEditKeyMap returns the default Editing-mode key bindings.
func DefaultEditKeyMap() EditKeyMap {
	return EditKeyMap{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Left:      key.NewBinding(key.WithKeys("left", "ctrl+b")),
		Right:     key.NewBinding(key.WithKeys("right", "ctrl+f")),
		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e")),
	}
}
