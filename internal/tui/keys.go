package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	quit     key.Binding
	version  key.Binding
	refresh  key.Binding
	admin    key.Binding
	copy     key.Binding
	password key.Binding
	logout   key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab", "down")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab", "up")),
	quit:     key.NewBinding(key.WithKeys("ctrl+c")),
	version:  key.NewBinding(key.WithKeys("v")),
	refresh:  key.NewBinding(key.WithKeys("r")),
	admin:    key.NewBinding(key.WithKeys("a")),
	copy:     key.NewBinding(key.WithKeys("c")),
	password: key.NewBinding(key.WithKeys("p")),
	logout:   key.NewBinding(key.WithKeys("l")),
}
