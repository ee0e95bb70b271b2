package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"docexplorer/internal/a11y"
	"docexplorer/internal/catalog"
	"docexplorer/internal/modal"
	"docexplorer/internal/tree"
)

type appModel struct {
	opts   Options
	store  *catalog.Store
	logger *log.Logger

	tree    *tree.Model
	treeCtl *tree.Controller
	dialog  *modal.Controller
	a11y    *a11y.Layer

	keys keyMap
	help help.Model

	width  int
	height int

	mode mode

	rows   []tree.Row
	cursor int
	offset int

	detailVP viewport.Model
	detail   detailContent

	jumpInput textinput.Model
	jumpList  list.Model

	flash   flash
	a11yErr error
}

func newAppModel(opts Options) appModel {
	m := appModel{
		opts:   opts,
		store:  opts.Catalog,
		logger: opts.Logger,
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  80,
		height: 24,
	}

	m.tree = tree.FromStore(m.store)
	m.a11y = a11y.New(m.tree)
	m.dialog = modal.New(m.store, m.logger, m.a11y)
	m.treeCtl = tree.NewController(m.tree, m.dialog, m.a11y)

	m.detailVP = viewport.New(0, 0)
	m.jumpInput = newJumpInput()
	m.jumpList = newJumpList()

	m.refreshRows()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

// refreshRows re-flattens the visible tree, keeping the cursor on the same id
// when it is still visible.
func (m *appModel) refreshRows() {
	cur := m.selectedID()
	m.rows = m.tree.Rows()
	if cur != "" && m.selectID(cur) {
		return
	}
	m.clampCursor()
}

func (m *appModel) selectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.cursor].Node.ID
}

func (m *appModel) selectID(id string) bool {
	for i, r := range m.rows {
		if r.Node.ID == id {
			m.cursor = i
			m.ensureCursorVisible()
			return true
		}
	}
	return false
}

func (m *appModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *appModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *appModel) ensureCursorVisible() {
	h := m.treeHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	maxOffset := len(m.rows) - h
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// treeHeight is the number of rows available to the tree.
func (m appModel) treeHeight() int {
	h := m.height - headerHeight - m.footerHeight()
	if h < 1 {
		h = 1
	}
	return h
}

func (m *appModel) checkA11y() {
	if !m.opts.Debug {
		return
	}
	m.a11yErr = m.a11y.Check(m.tree, m.dialog)
	if m.a11yErr != nil {
		m.logger.Error("accessibility drift", "err", m.a11yErr)
	}
}
