package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"docexplorer/internal/modal"
)

// detailContent is the scrollable body of the dialog. depLine maps a
// dependency entry index to its line in lines.
type detailContent struct {
	lines   []string
	depLine map[int]int
}

// dialogGeometry places the dialog on screen. All coordinates are absolute
// terminal cells so View and the mouse handler agree.
type dialogGeometry struct {
	left, top  int
	boxW, boxH int
	innerW     int
	bodyH      int
	bodyTop    int

	closeX0, closeX1, closeY int
}

func (g dialogGeometry) contains(x, y int) bool {
	return x >= g.left && x < g.left+g.boxW && y >= g.top && y < g.top+g.boxH
}

// Chrome inside the border: header, rule and hint lines.
const dialogChrome = 3

func (m appModel) dialogInnerWidth() int {
	boxW := m.width - 4
	if boxW > 84 {
		boxW = 84
	}
	if boxW < 24 {
		boxW = m.width
	}
	w := boxW - 4
	if w < 1 {
		w = 1
	}
	return w
}

func (m appModel) dialogGeometry() dialogGeometry {
	g := dialogGeometry{innerW: m.dialogInnerWidth()}
	g.boxW = g.innerW + 4

	maxBody := m.height - 2 - 2 - dialogChrome
	if maxBody < 1 {
		maxBody = 1
	}
	g.bodyH = len(m.detail.lines)
	if g.bodyH > maxBody {
		g.bodyH = maxBody
	}
	if g.bodyH < 1 {
		g.bodyH = 1
	}
	g.boxH = g.bodyH + dialogChrome + 2

	g.left = (m.width - g.boxW) / 2
	if g.left < 0 {
		g.left = 0
	}
	g.top = (m.height - g.boxH) / 2
	if g.top < 0 {
		g.top = 0
	}
	g.bodyTop = g.top + 1 + 2

	cw := xansi.StringWidth(glyphClose())
	g.closeY = g.top + 1
	g.closeX1 = g.left + 2 + g.innerW
	g.closeX0 = g.closeX1 - cw
	return g
}

// buildDetail lays out description, usage and dependencies for v.
func buildDetail(v modal.View, focus modal.Focus, width int) detailContent {
	out := detailContent{depLine: map[int]int{}}
	add := func(s string) {
		out.lines = append(out.lines, fitWidth(s, width))
	}
	addBlock := func(s string) {
		for _, ln := range strings.Split(s, "\n") {
			add(ln)
		}
	}
	heading := lipgloss.NewStyle().Bold(true).Foreground(colorChromeMutedFg)

	if strings.TrimSpace(v.Description) != "" {
		addBlock(renderMarkdown(v.Description, width))
		add("")
	}
	if strings.TrimSpace(v.Usage) != "" {
		add(heading.Render("Usage"))
		addBlock(renderMarkdown(v.Usage, width))
		add("")
	}

	add(heading.Render("Dependencies"))
	for i, e := range v.Entries {
		var ln string
		switch {
		case e.Placeholder:
			ln = styleMuted().Italic(true).Render("  " + e.Label)
		case e.Interactive:
			text := glyphLink() + " " + e.Label
			st := styleLink()
			if focus.Kind == modal.FocusDependency && focus.Entry == i {
				st = styleFocused()
			}
			ln = "  " + st.Render(text)
		default:
			ln = "  " + glyphBullet() + " " + e.Label
		}
		out.depLine[i] = len(out.lines)
		add(ln)
	}
	return out
}

// syncDialog rebuilds the dialog body from the controller state.
func (m *appModel) syncDialog(resetScroll bool) {
	v, ok := m.dialog.View()
	if !ok {
		m.detail = detailContent{}
		m.detailVP.SetContent("")
		m.detailVP.SetYOffset(0)
		return
	}
	m.detail = buildDetail(v, m.dialog.Focused(), m.dialogInnerWidth())
	g := m.dialogGeometry()
	m.detailVP.Width = g.innerW
	m.detailVP.Height = g.bodyH
	off := m.detailVP.YOffset
	m.detailVP.SetContent(strings.Join(m.detail.lines, "\n"))
	if resetScroll {
		off = 0
	}
	m.detailVP.SetYOffset(off)

	if f := m.dialog.Focused(); f.Kind == modal.FocusDependency {
		if ln, ok := m.detail.depLine[f.Entry]; ok {
			if ln < m.detailVP.YOffset {
				m.detailVP.SetYOffset(ln)
			} else if ln >= m.detailVP.YOffset+g.bodyH {
				m.detailVP.SetYOffset(ln - g.bodyH + 1)
			}
		}
	}
}

// entryAt returns the dependency entry drawn at screen row y.
func (m appModel) entryAt(g dialogGeometry, y int) (int, bool) {
	if y < g.bodyTop || y >= g.bodyTop+g.bodyH {
		return 0, false
	}
	line := m.detailVP.YOffset + (y - g.bodyTop)
	for idx, ln := range m.detail.depLine {
		if ln == line {
			return idx, true
		}
	}
	return 0, false
}

// renderDialog draws the bordered dialog box.
func (m appModel) renderDialog(g dialogGeometry) string {
	v, _ := m.dialog.View()

	closeSt := lipgloss.NewStyle().Foreground(colorMuted)
	if m.dialog.Focused().Kind == modal.FocusClose {
		closeSt = styleFocused()
	}
	closeCtl := closeSt.Render(glyphClose())
	titleW := g.innerW - xansi.StringWidth(glyphClose()) - 1
	title := fitWidth(styleHeader().Render(glyphIcon(v.Icon)+" "+v.Title), maxInt(titleW, 0))
	header := title + " " + closeCtl

	rule := styleMuted().Render(strings.Repeat(glyphHRule(), g.innerW))

	body := normalizePane(m.detailVP.View(), g.innerW, g.bodyH)

	hint := styleMuted().Render(m.dialogHint(v))

	lines := []string{header, rule}
	lines = append(lines, strings.Split(body, "\n")...)
	lines = append(lines, fitWidth(hint, g.innerW))
	return renderModalBox(g.innerW, lines)
}

func (m appModel) dialogHint(v modal.View) string {
	s := v.ID
	if total := len(m.detail.lines); total > m.detailVP.Height && m.detailVP.Height > 0 {
		pct := int(m.detailVP.ScrollPercent() * 100)
		s += "  " + strconv.Itoa(pct) + "%"
	}
	return s
}

func renderModalBox(innerW int, lines []string) string {
	for i := range lines {
		lines[i] = fitWidth(lines[i], innerW)
	}
	return lipgloss.NewStyle().
		Border(modalBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func modalBorder() lipgloss.Border {
	if glyphs() == glyphSetASCII {
		return lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		}
	}
	return lipgloss.RoundedBorder()
}
