package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"docexplorer/internal/catalog"
)

// jumpItem is one search hit in the jump-to-file picker.
type jumpItem struct {
	id     string
	folder bool
}

func (i jumpItem) Title() string {
	name := catalog.Base(i.id)
	if i.folder {
		return name + "/"
	}
	return name
}

func (i jumpItem) Description() string { return i.id }
func (i jumpItem) FilterValue() string { return i.id }

func newJumpInput() textinput.Model {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "file name"
	in.CharLimit = 256
	return in
}

func newJumpList() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Jump to file"
	// The picker has its own input line and footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("match", "matches")
	l.KeyMap.Quit.SetKeys()
	return l
}

func (m *appModel) openJump() tea.Cmd {
	m.mode = modeJump
	m.jumpInput.SetValue("")
	m.refreshJumpResults()
	m.resizeJump()
	return m.jumpInput.Focus()
}

func (m *appModel) closeJump() {
	m.mode = modeTree
	m.jumpInput.Blur()
}

func (m *appModel) resizeJump() {
	h := m.height - headerHeight - 2
	if h < 3 {
		h = 3
	}
	m.jumpList.SetSize(m.width, h)
	m.jumpInput.Width = m.width - 4
}

func (m *appModel) refreshJumpResults() {
	hits := m.tree.Search(m.jumpInput.Value())
	items := make([]list.Item, 0, len(hits))
	for _, id := range hits {
		items = append(items, jumpItem{id: id, folder: m.tree.IsFolder(id)})
	}
	m.jumpList.SetItems(items)
	m.jumpList.Select(0)
}

func (m appModel) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closeJump()
		return m, nil
	case "enter":
		it, ok := m.jumpList.SelectedItem().(jumpItem)
		m.closeJump()
		if !ok {
			return m, nil
		}
		m.treeCtl.Reveal(it.id)
		m.refreshRows()
		m.selectID(it.id)
		return m, nil
	case "up", "down", "ctrl+p", "ctrl+n", "pgup", "pgdown":
		var cmd tea.Cmd
		m.jumpList, cmd = m.jumpList.Update(remapJumpKey(msg))
		return m, cmd
	}

	before := m.jumpInput.Value()
	var cmd tea.Cmd
	m.jumpInput, cmd = m.jumpInput.Update(msg)
	if m.jumpInput.Value() != before {
		m.refreshJumpResults()
	}
	return m, cmd
}

// remapJumpKey turns emacs-style aliases into arrows, since j/k belong to the
// text input while the picker is open.
func remapJumpKey(msg tea.KeyMsg) tea.KeyMsg {
	switch msg.String() {
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	}
	return msg
}
