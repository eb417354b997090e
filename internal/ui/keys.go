package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Results key.Binding
	Open    key.Binding
	Up      key.Binding
	Down    key.Binding
}

var Keys = KeyMap{
	Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Help:    key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "help")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "preview")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Results: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "results tree")),
	Open:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open in editor")),
	Up:      key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("up", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("down", "down")),
}
