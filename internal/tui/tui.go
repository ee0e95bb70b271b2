// Package tui is the interactive terminal front end of the explorer: a
// collapsible file tree and a details dialog for the selected file.
package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"docexplorer/internal/catalog"
)

type Options struct {
	Catalog *catalog.Store
	// Source labels the catalog in the header (a file path or "built-in").
	Source string
	Logger *log.Logger

	// Glyphs and Theme override DOCEXPLORER_TUI_GLYPHS / DOCEXPLORER_TUI_THEME.
	Glyphs string
	Theme  string

	// Debug checks the accessibility attributes after every update and shows drift.
	Debug bool
}

// ApplyPreferences configures the process-wide colour profile, background
// and glyph set. Call it once before starting programs.
func ApplyPreferences(opts Options) {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)
}

// New returns a fresh explorer model. Every call gets its own tree state,
// dialog state and accessibility layer; only the catalog is shared.
func New(opts Options) tea.Model {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return newAppModel(opts)
}

// ProgramOptions are the bubbletea options every explorer program uses.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

func Run(opts Options) error {
	ApplyPreferences(opts)
	_, err := tea.NewProgram(New(opts), ProgramOptions()...).Run()
	return err
}
