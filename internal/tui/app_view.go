package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"docexplorer/internal/tree"
)

func (m appModel) View() string {
	if m.mode == modeJump {
		return m.viewJump()
	}

	screen := strings.Join([]string{
		m.viewHeader(),
		m.viewTree(),
		m.viewFooter(),
	}, "\n")
	screen = normalizePane(screen, m.width, m.height)

	if !m.dialog.IsOpen() {
		return screen
	}
	g := m.dialogGeometry()
	return overlay(dimBackground(screen), m.renderDialog(g), g.left, g.top, m.width)
}

func (m appModel) viewHeader() string {
	src := strings.TrimSpace(m.opts.Source)
	if src == "" {
		src = "built-in catalog"
	}
	title := styleHeader().Render("docexplorer") + "  " +
		styleMuted().Render(fmt.Sprintf("%s · %d files", src, m.store.Len()))
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), maxInt(m.width, 1)))
	return title + "\n" + rule
}

func (m appModel) viewTree() string {
	h := m.treeHeight()
	lines := make([]string, 0, h)
	for i := m.offset; i < len(m.rows) && len(lines) < h; i++ {
		lines = append(lines, m.renderRow(i))
	}
	if len(m.rows) == 0 {
		lines = append(lines, styleMuted().Render("(empty catalog)"))
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderRow(i int) string {
	r := m.rows[i]
	indent := strings.Repeat("  ", r.Node.Depth)
	var text string
	if r.Node.Kind == tree.KindFolder {
		twisty := glyphTwistyCollapsed()
		if r.Expanded {
			twisty = glyphTwistyExpanded()
		}
		text = fmt.Sprintf("%s%s %s %s (%d)", indent, twisty, glyphFolder(r.Expanded), r.Node.Name(), r.ChildCount)
	} else {
		class := ""
		if e, ok := m.store.Lookup(r.Node.ID); ok {
			class = e.Record.Icon
		}
		icon := glyphIcon(class)
		text = fmt.Sprintf("%s  %s %s", indent, icon, r.Node.Name())
	}
	text = fitWidth(text, m.width)

	switch {
	case i == m.cursor:
		return styleSelectedRow().Render(text)
	case r.Node.Kind == tree.KindFolder:
		return styleFolder().Render(text)
	default:
		return text
	}
}

func (m appModel) statusLine() string {
	if m.a11yErr != nil {
		first := strings.SplitN(m.a11yErr.Error(), "\n", 2)[0]
		return styleWarn().Render("a11y drift: " + first)
	}
	if m.flash.text != "" {
		if m.flash.kind == flashWarn {
			return styleWarn().Render(m.flash.text)
		}
		return m.flash.text
	}
	if id, ok := m.dialog.Current(); ok {
		return styleMuted().Render("dialog: " + id)
	}
	return styleMuted().Render(m.a11y.Announce(m.selectedID()))
}

func (m appModel) helpView() string {
	if m.dialog.IsOpen() {
		return m.help.View(dialogHelp{k: m.keys})
	}
	return m.help.View(treeHelp{k: m.keys})
}

func (m appModel) footerHeight() int {
	return 1 + lipgloss.Height(m.helpView())
}

func (m appModel) viewFooter() string {
	return m.statusLine() + "\n" + m.helpView()
}

func (m appModel) viewJump() string {
	header := styleHeader().Render("Jump to file") + "  " +
		styleMuted().Render(fmt.Sprintf("%d matches", len(m.jumpList.Items())))
	body := strings.Join([]string{
		header,
		m.jumpInput.View(),
		m.jumpList.View(),
		styleMuted().Render("enter: reveal  ↑/↓: move  esc: cancel"),
	}, "\n")
	return normalizePane(body, m.width, m.height)
}
