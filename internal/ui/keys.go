package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Edit      key.Binding
	AddRow    key.Binding
	DeleteRow key.Binding
	Undo      key.Binding
	Redo      key.Binding
	SaveCSV   key.Binding
	SaveXLSX  key.Binding
	Open      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "right")),
		Edit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit cell")),
		AddRow:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add row")),
		DeleteRow: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete row")),
		Undo:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo")),
		SaveCSV:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "export csv")),
		SaveXLSX:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export xlsx")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open file")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.AddRow, k.DeleteRow, k.SaveCSV, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Edit, k.AddRow, k.DeleteRow},
		{k.Undo, k.Redo},
		{k.SaveCSV, k.SaveXLSX, k.Open, k.Quit},
	}
}
