package tui

type mode int

const (
	modeTree mode = iota
	modeJump
)

// Screen rows above the tree: title and rule.
const headerHeight = 2

type flashKind int

const (
	flashInfo flashKind = iota
	flashWarn
)

type flash struct {
	kind flashKind
	text string
}
