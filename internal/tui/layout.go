package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall, so overlay splicing can rely on fixed coordinates.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		lines[i] = fitWidth(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// fitWidth truncates (with an ellipsis) or pads ln to exactly width columns.
func fitWidth(ln string, width int) string {
	// Fast path: cut absurdly long lines before measuring them.
	if width > 0 && len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width)
	}
	w := xansi.StringWidth(ln)
	if w > width {
		switch {
		case width <= 0:
			ln = ""
		case width == 1:
			ln = xansi.Cut(ln, 0, 1)
		default:
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// dimBackground re-renders s in a single muted colour. Inner styles are
// stripped first so they cannot override the scrim.
func dimBackground(s string) string {
	st := lipgloss.NewStyle().Foreground(colorScrimFg)
	lines := strings.Split(xansi.Strip(s), "\n")
	for i, ln := range lines {
		lines[i] = st.Render(ln)
	}
	return strings.Join(lines, "\n")
}

// overlay splices box onto bg with its top-left corner at (left, top). bg must
// already be normalized to width columns.
func overlay(bg, box string, left, top, width int) string {
	bgLines := strings.Split(bg, "\n")
	boxLines := strings.Split(box, "\n")
	for i, bl := range boxLines {
		y := top + i
		if y < 0 || y >= len(bgLines) {
			continue
		}
		bw := xansi.StringWidth(bl)
		row := bgLines[y]
		leftPart := xansi.Cut(row, 0, left)
		if lw := xansi.StringWidth(leftPart); lw < left {
			leftPart += strings.Repeat(" ", left-lw)
		}
		rightPart := ""
		if left+bw < width {
			rightPart = xansi.Cut(row, left+bw, width)
		}
		bgLines[y] = leftPart + bl + rightPart
	}
	return strings.Join(bgLines, "\n")
}
