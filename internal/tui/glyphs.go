package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's actual font. Instead, we can choose
// between Unicode and ASCII glyph sets for UI affordances (twisties, arrows,
// file icons). This helps on terminals/fonts that don't render some glyphs cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference uses pref when set, else DOCEXPLORER_TUI_GLYPHS.
func applyGlyphPreference(pref string) {
	v := strings.ToLower(strings.TrimSpace(pref))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(os.Getenv("DOCEXPLORER_TUI_GLYPHS")))
	}
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphTwistyCollapsed() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphTwistyExpanded() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "▾"
}

// glyphLink marks a dependency that can be followed.
func glyphLink() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "↗"
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphClose() string {
	if glyphs() == glyphSetASCII {
		return "[x]"
	}
	return "[×]"
}

func glyphFolder(expanded bool) string {
	if glyphs() == glyphSetASCII {
		if expanded {
			return "[-]"
		}
		return "[+]"
	}
	if expanded {
		return "📂"
	}
	return "📁"
}

// iconGlyphs maps icon class names from the catalog to terminal glyphs.
var iconGlyphs = map[string][2]string{
	"fa-java":                 {"☕", "J"},
	"fa-markdown":             {"Ⓜ", "M"},
	"fa-clipboard-list":       {"📋", "L"},
	"fa-cog":                  {"⚙", "*"},
	"fa-cogs":                 {"⚙", "*"},
	"fa-gear":                 {"⚙", "*"},
	"fa-users-cog":            {"⚙", "*"},
	"fa-desktop":              {"🖥", "D"},
	"fa-exclamation-circle":   {"⚠", "!"},
	"fa-exclamation-triangle": {"⚠", "!"},
	"fa-file-exclamation":     {"⚠", "!"},
	"fa-times-circle":         {"✖", "x"},
	"fa-file-csv":             {"▦", "C"},
	"fa-file-pdf":             {"📄", "P"},
	"fa-flask":                {"⚗", "T"},
	"fa-vial":                 {"⚗", "T"},
	"fa-keyboard":             {"⌨", "K"},
	"fa-terminal":             {"❯", ">"},
	"fa-play":                 {"▶", ">"},
	"fa-shopping-cart":        {"🛒", "$"},
	"fa-tags":                 {"🏷", "#"},
	"fa-user":                 {"👤", "U"},
	"fa-user-circle":          {"👤", "U"},
}

// glyphIcon turns an icon class list such as "fas fa-file-code" into a glyph.
func glyphIcon(class string) string {
	idx := 0
	if glyphs() == glyphSetASCII {
		idx = 1
	}
	for _, f := range strings.Fields(class) {
		if g, ok := iconGlyphs[f]; ok {
			return g[idx]
		}
	}
	if idx == 1 {
		return "-"
	}
	return "📄"
}
