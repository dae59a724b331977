package teaui

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Quit     key.Binding
	Cancel   key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding
	Complete key.Binding
	Skip     key.Binding
	Delete   key.Binding
	Up       key.Binding
	Down     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		PrevWeek: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev week")),
		NextWeek: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next week")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Complete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "complete")),
		Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "earlier")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "later")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.PrevWeek, k.NextWeek, k.Today, k.Complete, k.Skip, k.Delete, k.Quit}
}
