package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"docexplorer/internal/modal"
	"docexplorer/internal/tree"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if am, ok := next.(appModel); ok {
		am.checkA11y()
		return am, cmd
	}
	return next, cmd
}

func (m appModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeJump()
		m.ensureCursorVisible()
		if m.dialog.IsOpen() {
			m.syncDialog(false)
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		m.flash = flash{}
		if m.mode == modeJump {
			return m.updateJump(msg)
		}
		if m.dialog.IsOpen() {
			return m.updateDialogKey(msg)
		}
		return m.updateTreeKey(msg)
	}
	return m, nil
}

func (m appModel) updateTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.clampCursor()
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.rows) - 1
		m.clampCursor()
	case key.Matches(msg, m.keys.Activate):
		trigger := tree.TriggerKeyEnter
		if msg.Type == tea.KeySpace || msg.String() == " " {
			trigger = tree.TriggerKeySpace
		}
		m.activate(m.selectedID(), trigger)
	case key.Matches(msg, m.keys.Expand):
		id := m.selectedID()
		if m.tree.IsFolder(id) {
			if !m.tree.IsExpanded(id) {
				m.treeCtl.Expand(id)
				m.refreshRows()
			} else if kids := m.tree.Children(id); len(kids) > 0 {
				m.selectID(kids[0])
			}
		}
	case key.Matches(msg, m.keys.Collapse):
		id := m.selectedID()
		if m.tree.IsExpanded(id) {
			m.treeCtl.Collapse(id)
			m.refreshRows()
		} else if p, ok := m.tree.Parent(id); ok {
			m.selectID(p)
		}
	case key.Matches(msg, m.keys.Jump):
		return m, m.openJump()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.ensureCursorVisible()
	}
	return m, nil
}

// activate routes an activation on a tree row to the tree controller.
func (m *appModel) activate(id string, trigger tree.Trigger) {
	if id == "" {
		return
	}
	out := m.treeCtl.Handle(tree.Event{Target: id, Trigger: trigger})
	switch out.Kind {
	case tree.OutcomeExpanded, tree.OutcomeCollapsed:
		m.refreshRows()
	case tree.OutcomeOpened:
		m.syncDialog(true)
	case tree.OutcomeOpenFailed:
		m.flash = flash{kind: flashWarn, text: "no description found for " + id}
	}
}

func (m appModel) updateDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Close):
		m.dialog.Dismiss(modal.DismissEscape)
		m.syncDialog(true)
	case key.Matches(msg, m.keys.FocusNext):
		m.dialog.FocusNext()
		m.syncDialog(false)
	case key.Matches(msg, m.keys.FocusPrev):
		m.dialog.FocusPrev()
		m.syncDialog(false)
	case key.Matches(msg, m.keys.Activate):
		before, _ := m.dialog.Current()
		if m.dialog.ActivateFocused() {
			after, _ := m.dialog.Current()
			m.syncDialog(after != before)
		}
	case key.Matches(msg, m.keys.Up):
		m.detailVP.SetYOffset(m.detailVP.YOffset - 1)
	case key.Matches(msg, m.keys.Down):
		m.detailVP.SetYOffset(m.detailVP.YOffset + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.detailVP.SetYOffset(m.detailVP.YOffset - m.detailVP.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.detailVP.SetYOffset(m.detailVP.YOffset + m.detailVP.Height)
	}
	return m, nil
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeJump {
		return m, nil
	}
	wheel := 0
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		wheel = -1
	case tea.MouseButtonWheelDown:
		wheel = 1
	}

	if m.dialog.IsOpen() {
		if wheel != 0 {
			m.detailVP.SetYOffset(m.detailVP.YOffset + wheel)
			return m, nil
		}
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		g := m.dialogGeometry()
		switch {
		case msg.Y == g.closeY && msg.X >= g.closeX0 && msg.X < g.closeX1:
			m.dialog.Dismiss(modal.DismissCloseControl)
			m.syncDialog(true)
		case !g.contains(msg.X, msg.Y):
			m.dialog.Dismiss(modal.DismissOverlay)
			m.syncDialog(true)
		default:
			if idx, ok := m.entryAt(g, msg.Y); ok && m.dialog.ActivateDependency(idx) {
				m.syncDialog(true)
			}
		}
		return m, nil
	}

	if wheel != 0 {
		m.moveCursor(wheel)
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	row := msg.Y - headerHeight
	if row < 0 || row >= m.treeHeight() {
		return m, nil
	}
	idx := m.offset + row
	if idx >= len(m.rows) {
		return m, nil
	}
	m.cursor = idx
	m.activate(m.rows[idx].Node.ID, tree.TriggerPointer)
	return m, nil
}
