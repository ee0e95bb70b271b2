package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestMarkdownStyle_FollowsTheme(t *testing.T) {
	oldBG := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(oldBG) })
	t.Setenv("COLORFGBG", "")
	t.Setenv("DOCEXPLORER_TUI_THEME", "")

	applyThemePreference("light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}
	applyThemePreference("dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}

	t.Setenv("DOCEXPLORER_TUI_THEME", "light")
	applyThemePreference("auto")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected env theme to apply under auto; got %q", got)
	}

	t.Setenv("DOCEXPLORER_TUI_THEME", "")
	t.Setenv("COLORFGBG", "15;0")
	applyThemePreference("")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected COLORFGBG dark background; got %q", got)
	}
}

func TestMarkdownStyleConfig_UsesPaletteLinkColor(t *testing.T) {
	t.Parallel()

	cfg := markdownStyleConfig("light")
	if cfg.Link.Color == nil || *cfg.Link.Color != colorAccent.Light {
		t.Fatalf("expected accent link color %q; got %v", colorAccent.Light, cfg.Link.Color)
	}
	cfg = markdownStyleConfig("dark")
	if cfg.Link.Color == nil || *cfg.Link.Color != colorAccent.Dark {
		t.Fatalf("expected accent link color %q; got %v", colorAccent.Dark, cfg.Link.Color)
	}
}

func TestRenderMarkdown_WrapsWithoutMargin(t *testing.T) {
	t.Parallel()

	if renderMarkdown("   ", 40) != "" {
		t.Fatalf("blank markdown should render empty")
	}
	out := xansi.Strip(renderMarkdown("Classe **utility** per la gestione dell'input utente da console.", 20))
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapping at width 20; got %q", out)
	}
	if !strings.HasPrefix(lines[0], "Classe") {
		t.Fatalf("expected no left margin; got %q", lines[0])
	}
	if strings.Contains(out, "**") {
		t.Fatalf("expected emphasis markers to be rendered; got %q", out)
	}
}
