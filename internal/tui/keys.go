package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Confirm   key.Binding
	Swing     key.Binding
	Interact  key.Binding
	Battle    key.Binding
	Inventory key.Binding
	Recipes   key.Binding
	Invent    key.Binding
	Camp      key.Binding
	Cancel    key.Binding
	Pick      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Confirm:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "continue")),
		Swing:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "swing")),
		Interact:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "investigate")),
		Battle:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "seek a fight")),
		Inventory: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inventory")),
		Recipes:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "craft")),
		Invent:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "invent")),
		Camp:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "camp")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc/x", "cancel")),
		Pick:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "pick")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Swing, k.Interact, k.Battle, k.Pick, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Pick, k.Cancel},
		{k.Swing, k.Interact, k.Battle},
		{k.Inventory, k.Recipes, k.Invent, k.Camp},
		{k.Help, k.Quit},
	}
}
