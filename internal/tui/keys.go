package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	Documents key.Binding
	Chats     key.Binding
	Tables    key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Reload    key.Binding
	Upload    key.Binding
	Delete    key.Binding
	Yank      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		Documents: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "documents"),
		),
		Chats: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "chats"),
		),
		Tables: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "tables"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "expand/collapse"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy id"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Reload, k.Upload, k.Delete, k.Toggle, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Documents, k.Chats, k.Tables, k.NextTab, k.PrevTab},
		{k.Up, k.Down, k.Toggle, k.Reload},
		{k.Upload, k.Delete, k.Yank, k.Quit},
	}
}
