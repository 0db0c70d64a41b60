package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the key bindings shared by the input modes and the help footer
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	HalfUp     key.Binding
	HalfDown   key.Binding
	Bottom     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	Enter      key.Binding
	Edit       key.Binding
	Browse     key.Binding
	ClearField key.Binding
	Pager      key.Binding
	Help       key.Binding
	HelpPager  key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "f", " "), key.WithHelp("pgdn", "page down")),
		HalfUp:     key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		HalfDown:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("gg/G", "top/bottom")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Edit:       key.NewBinding(key.WithKeys("/", "i"), key.WithHelp("/", "edit query")),
		Browse:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "results")),
		ClearField: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "clear field")),
		Pager:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view records")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		HelpPager:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "help in pager")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// EditHelp is the footer for the form
type EditHelp struct{ KeyMap }

func (k EditHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Submit, k.NextField, k.ClearField, k.Browse, k.ForceQuit}
}

func (k EditHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// BrowseHelp is the footer for the results pane
type BrowseHelp struct{ KeyMap }

func (k BrowseHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.PageDown, k.Bottom, k.Edit, k.Pager, k.Help, k.Quit}
}

func (k BrowseHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.HalfUp, k.HalfDown, k.Bottom},
		{k.Edit, k.NextField, k.Submit, k.Pager, k.Help, k.HelpPager, k.Quit},
	}
}
