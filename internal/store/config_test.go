package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig_DefaultsWhenMissing(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("DOCEXPLORER_CONFIG_DIR", cfgDir)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LogLevel != "warn" || cfg.TUI.Glyphs != "unicode" || cfg.TUI.Theme != "auto" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.SSH.HostKey != filepath.Join(cfgDir, "ssh_host_ed25519") {
		t.Fatalf("unexpected host key default %q", cfg.SSH.HostKey)
	}
	if cfg.Path() != "" {
		t.Fatalf("expected no config file; got %q", cfg.Path())
	}
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("DOCEXPLORER_CONFIG_DIR", cfgDir)
	body := "catalog: ./cat.yaml\nlog_level: info\ntui:\n  glyphs: ascii\n  theme: dark\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("DOCEXPLORER_TUI_THEME", "light")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Catalog != "./cat.yaml" || cfg.LogLevel != "info" || cfg.TUI.Glyphs != "ascii" {
		t.Fatalf("expected file values; got %+v", cfg)
	}
	if cfg.TUI.Theme != "light" {
		t.Fatalf("expected env override; got %q", cfg.TUI.Theme)
	}
	if !strings.HasSuffix(cfg.Path(), "config.yaml") {
		t.Fatalf("expected config path; got %q", cfg.Path())
	}
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("DOCEXPLORER_CONFIG_DIR", cfgDir)
	path := filepath.Join(cfgDir, "custom.yaml")
	if err := os.WriteFile(path, []byte("tui:\n  glyphs: emoji\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected validation error for glyphs")
	}

	t.Setenv("DOCEXPLORER_LOG_LEVEL", "loud")
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected validation error for log level")
	}
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	t.Setenv("DOCEXPLORER_CONFIG_DIR", t.TempDir())
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for explicit missing config")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("DOCEXPLORER_CONFIG_DIR", cfgDir)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg.TUI.Glyphs = "ascii"
	path, err := SaveConfig(cfg, "")
	if err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if path != filepath.Join(cfgDir, "config.yaml") {
		t.Fatalf("unexpected path %q", path)
	}

	again, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if again.TUI.Glyphs != "ascii" {
		t.Fatalf("expected saved glyphs; got %+v", again.TUI)
	}
}
