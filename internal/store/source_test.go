package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"docexplorer/internal/catalog"
)

func TestLoadCatalog_ByExtension(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "cat.json")
	if err := os.WriteFile(jsonPath, []byte(`{"a/b.txt":{"icon":"i","description":"d","usage":"u","dependencies":["a/c.txt"]}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	yamlPath := filepath.Join(dir, "cat.yml")
	if err := os.WriteFile(yamlPath, []byte("a/c.txt:\n  icon: i\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sqlitePath := filepath.Join(dir, "cat.db")
	if err := SaveSQLite(ctx, sqlitePath, map[string]catalog.Record{"x": {Dependencies: []string{}}}); err != nil {
		t.Fatalf("SaveSQLite: %v", err)
	}

	tests := []struct {
		path string
		id   string
	}{
		{path: jsonPath, id: "a/b.txt"},
		{path: yamlPath, id: "a/c.txt"},
		{path: sqlitePath, id: "x"},
	}
	for _, tt := range tests {
		s, err := LoadCatalog(ctx, tt.path)
		if err != nil {
			t.Fatalf("LoadCatalog(%s): %v", tt.path, err)
		}
		if _, ok := s.Lookup(tt.id); !ok {
			t.Fatalf("LoadCatalog(%s): missing %q", tt.path, tt.id)
		}
	}

	s, err := LoadCatalog(ctx, "")
	if err != nil || s.Len() != catalog.Default().Len() {
		t.Fatalf("expected built-in catalog; err=%v", err)
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	txt := filepath.Join(dir, "cat.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCatalog(ctx, txt); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat; got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"/abs":{}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCatalog(ctx, bad); !errors.Is(err, catalog.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID; got %v", err)
	}

	if _, err := LoadCatalog(ctx, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
