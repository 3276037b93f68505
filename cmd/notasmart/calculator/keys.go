package calculator

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Add     key.Binding
	Remove  key.Binding
	Scale   key.Binding
	Results key.Binding
	Close   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Add:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add grade")),
		Remove:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove grade")),
		Scale:   key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "change scale")),
		Results: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "results")),
		Close:   key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "close")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Add, k.Remove, k.Scale, k.Results, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Add, k.Remove},
		{k.Scale, k.Results, k.Close, k.Quit},
	}
}
