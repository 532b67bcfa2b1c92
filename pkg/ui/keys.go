package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	Select    key.Binding
	Refresh   key.Binding
	ChangeDir key.Binding
	Again     key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap provides sensible default keybindings.
var DefaultKeyMap = KeyMap{
	Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh devices")),
	ChangeDir: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "change directory")),
	Again:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "again")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

func helpLine(bindings ...key.Binding) string {
	var s string
	for i, b := range bindings {
		if i > 0 {
			s += "  "
		}
		s += fmt.Sprintf("%s/%s", b.Help().Key, b.Help().Desc)
	}
	return s
}
