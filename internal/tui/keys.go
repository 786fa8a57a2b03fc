package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding

	// Navigation
	ViewAll key.Binding
	Search  key.Binding

	// Actions
	Select  key.Binding
	New     key.Binding
	Save    key.Binding
	Print   key.Binding
	Export  key.Binding
	AddItem key.Binding
	Remove  key.Binding

	// Movement
	Up       key.Binding
	Down     key.Binding
	NextSlot key.Binding
	PrevSlot key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	ViewAll:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "view all")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	New:       key.NewBinding(key.WithKeys("n", "ctrl+n"), key.WithHelp("n", "new invoice")),
	Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Print:     key.NewBinding(key.WithKeys("p", "ctrl+p"), key.WithHelp("p", "print")),
	Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export book")),
	AddItem:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add item")),
	Remove:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove item")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	NextSlot:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevSlot:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
}
