package tableview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the table key bindings. It satisfies help.KeyMap.
type KeyMap struct {
	Up, Down, Left, Right key.Binding
	Top, Bottom           key.Binding

	Sort       key.Binding
	ToggleRow  key.Binding
	ToggleAll  key.Binding
	Filter     key.Binding
	LeaveInput key.Binding

	NextPage, PrevPage key.Binding

	Actions    key.Binding
	MenuSelect key.Binding
	MenuClose  key.Binding

	HideColumn  key.Binding
	ShowColumns key.Binding

	Copy key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column right")),
		Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first row")),
		Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last row")),

		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		ToggleRow: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select row")),
		ToggleAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select page")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		// Leaving the filter input keeps the typed text.
		LeaveInput: key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "done")),

		NextPage: key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "previous page")),

		Actions:    key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "actions")),
		MenuSelect: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run action")),
		MenuClose:  key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close menu")),

		HideColumn:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "hide column")),
		ShowColumns: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "show columns")),

		Copy: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy rows")),
	}
}

func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Sort, km.ToggleRow, km.Filter, km.Actions}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Up, km.Down, km.Left, km.Right, km.Top, km.Bottom},
		{km.Sort, km.Filter, km.HideColumn, km.ShowColumns},
		{km.ToggleRow, km.ToggleAll, km.Copy},
		{km.NextPage, km.PrevPage, km.Actions},
	}
}

func isZeroKeyMap(km KeyMap) bool {
	return len(km.Up.Keys()) == 0 && len(km.Down.Keys()) == 0 && len(km.Sort.Keys()) == 0
}
