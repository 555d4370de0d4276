package ui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Quit       key.Binding
	QuitAlways key.Binding
	Up         key.Binding
	Down       key.Binding
	Submit     key.Binding
	Back       key.Binding
	Clear      key.Binding
	Focus      key.Binding
	Search     key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	QuitAlways: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Up:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
	Down:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Clear:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
}

// shortHelp is the footer hint for the focused area.
func (k keyMap) shortHelp(inputFocused bool) []key.Binding {
	if inputFocused {
		return []key.Binding{k.Down, k.Submit, k.Back, k.Clear, k.Focus, k.QuitAlways}
	}
	return []key.Binding{k.Up, k.Down, k.Search, k.Clear, k.Focus, k.Quit}
}
