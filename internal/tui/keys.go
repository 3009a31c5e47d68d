package tui

import "github.com/charmbracelet/bubbles/key"

// navKeys are the view-switch bindings shared by the non-entry screens.
type navKeyMap struct {
	Quit     key.Binding
	NewSale  key.Binding
	Table    key.Binding
	Ledger   key.Binding
	Manage   key.Binding
	Settings key.Binding
}

var navKeys = navKeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NewSale:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new sale")),
	Table:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "entries")),
	Ledger:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "ledger")),
	Manage:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
	Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
}
