package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Activate key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Jump     key.Binding
	Help     key.Binding
	Quit     key.Binding

	// Dialog.
	Close     key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "open/toggle")),
		Expand:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
		Collapse: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse/parent")),
		Jump:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump to file")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		FocusNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next link")),
		FocusPrev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev link")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "page down")),
	}
}

// treeHelp and dialogHelp adapt the key map to help.KeyMap for each mode.
type treeHelp struct{ k keyMap }

func (h treeHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Activate, h.k.Jump, h.k.Help, h.k.Quit}
}

func (h treeHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Up, h.k.Down, h.k.Top, h.k.Bottom},
		{h.k.Activate, h.k.Expand, h.k.Collapse},
		{h.k.Jump, h.k.Help, h.k.Quit},
	}
}

type dialogHelp struct{ k keyMap }

func (h dialogHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.FocusNext, h.k.Activate, h.k.Close}
}

func (h dialogHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.FocusNext, h.k.FocusPrev, h.k.Activate},
		{h.k.Up, h.k.Down, h.k.PageUp, h.k.PageDown},
		{h.k.Close, h.k.Quit},
	}
}
