package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustEnv(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: docexplorer %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DOCEXPLORER_CONFIG_DIR", dir)
	return dir
}

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return p
}

const smallCatalog = `
"src/a.go":
  icon: "fas fa-file-code"
  description: "A."
  usage: "Use A."
  dependencies: ["src/b.go", "fmt"]
"src/b.go":
  icon: "fas fa-file-code"
  description: "B."
  usage: "Use B."
  dependencies: []
`

func TestShow_DefaultCatalog(t *testing.T) {
	isolateConfig(t)

	env := mustEnv(t, "show", "src/view/cli/MainCLI.java")
	data := env["data"].(map[string]any)
	if data["id"] != "src/view/cli/MainCLI.java" || data["title"] != "MainCLI.java" {
		t.Fatalf("unexpected data %v", data)
	}
	deps := data["dependencies"].([]any)
	if len(deps) != 3 {
		t.Fatalf("expected 3 dependencies; got %v", deps)
	}
	hints := env["_hints"].([]any)
	if len(hints) != 3 || hints[0] != "docexplorer show src/controller/GestoreBachecaImpl.java" {
		t.Fatalf("unexpected hints %v", hints)
	}

	env = mustEnv(t, "show", "README.md")
	deps = env["data"].(map[string]any)["dependencies"].([]any)
	placeholder := deps[0].(map[string]any)
	if placeholder["label"] != "No external dependencies" || placeholder["placeholder"] != true {
		t.Fatalf("expected placeholder entry; got %v", deps)
	}
}

func TestShow_UnknownFile(t *testing.T) {
	isolateConfig(t)

	_, stderr, err := runCLI(t, []string{"show", "nope.go"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrNotFound) || err.Error() != "file not found: nope.go" {
		t.Fatalf("expected not-found error; got %v", err)
	}
	if len(stderr) != 0 {
		t.Fatalf("errors are printed once by the caller; stderr=%q", stderr)
	}
}

func TestDeps_Unresolved(t *testing.T) {
	isolateConfig(t)

	env := mustEnv(t, "deps", "src/view/frontend/MainGUI.java", "--unresolved")
	deps := env["data"].([]any)
	if len(deps) != 1 {
		t.Fatalf("expected one unresolved dependency; got %v", deps)
	}
	d := deps[0].(map[string]any)
	if d["path"] != "javax.swing.*" || d["status"] != "unresolved" {
		t.Fatalf("unexpected dependency %v", d)
	}
}

func TestTree_ExpandRejectsFiles(t *testing.T) {
	isolateConfig(t)

	_, _, err := runCLI(t, []string{"tree", "--expand", "README.md"})
	if !errors.Is(err, ErrNotFound) || err.Error() != "folder not found: README.md" {
		t.Fatalf("expected folder not-found error; got %v", err)
	}
}

func TestTree_Rows(t *testing.T) {
	isolateConfig(t)

	rows := mustEnv(t, "tree")["data"].(map[string]any)["rows"].([]any)
	if len(rows) != 6 {
		t.Fatalf("expected only the 6 roots; got %d", len(rows))
	}

	rows = mustEnv(t, "tree", "--expand", "src")["data"].(map[string]any)["rows"].([]any)
	if len(rows) != 11 {
		t.Fatalf("expected roots plus 5 children of src; got %d", len(rows))
	}

	data := mustEnv(t, "tree", "--expand-all", "--a11y")["data"].(map[string]any)
	rows = data["rows"].([]any)
	if len(rows) < 24 {
		t.Fatalf("expected every file visible; got %d rows", len(rows))
	}
	first := rows[0].(map[string]any)
	attrs := first["attrs"].(map[string]any)
	if attrs["role"] != "treeitem" || attrs["aria-expanded"] != "true" {
		t.Fatalf("unexpected attrs %v", attrs)
	}
	if data["root"].(map[string]any)["aria-label"] != "Project files" {
		t.Fatalf("unexpected root attrs %v", data["root"])
	}

	if _, _, err := runCLI(t, []string{"tree", "--expand", "README.md"}); err == nil {
		t.Fatalf("expected error expanding a file")
	}
}

func TestSearch(t *testing.T) {
	isolateConfig(t)

	hits := mustEnv(t, "search", "gestore")["data"].([]any)
	if len(hits) != 5 {
		t.Fatalf("expected 5 Gestore* files; got %v", hits)
	}
}

func TestValidate_ReportsUnresolved(t *testing.T) {
	isolateConfig(t)
	p := writeCatalog(t, smallCatalog)

	data := mustEnv(t, "--catalog", p, "validate")["data"].(map[string]any)
	if data["files"] != float64(2) {
		t.Fatalf("unexpected data %v", data)
	}
	unresolved := data["unresolved"].([]any)
	if len(unresolved) != 1 || unresolved[0].(map[string]any)["dependency"] != "fmt" {
		t.Fatalf("unexpected unresolved %v", unresolved)
	}

	if _, _, err := runCLI(t, []string{"--catalog", p, "validate", "--strict"}); err == nil {
		t.Fatalf("expected --strict to fail")
	}
}

func TestExport_RoundTripsThroughSQLite(t *testing.T) {
	isolateConfig(t)
	p := writeCatalog(t, smallCatalog)
	db := filepath.Join(t.TempDir(), "catalog.sqlite")

	mustEnv(t, "--catalog", p, "export", "--to", db)

	data := mustEnv(t, "--catalog", db, "show", "src/a.go")["data"].(map[string]any)
	deps := data["dependencies"].([]any)
	if len(deps) != 2 || deps[0].(map[string]any)["target"] != "src/b.go" {
		t.Fatalf("unexpected dependencies after export %v", deps)
	}
}

func TestPublish(t *testing.T) {
	isolateConfig(t)
	p := writeCatalog(t, smallCatalog)
	out := t.TempDir()

	data := mustEnv(t, "--catalog", p, "publish", "--to", out)["data"].(map[string]any)
	if written := data["written"].([]any); len(written) != 3 {
		t.Fatalf("expected index + 2 pages; got %v", written)
	}
	if _, err := os.Stat(filepath.Join(out, "files", "src", "a.go.md")); err != nil {
		t.Fatalf("expected page: %v", err)
	}
}

func TestFormatYAML(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := runCLI(t, []string{"--format", "yaml", "show", "README.md"})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(string(stdout), "id: README.md") {
		t.Fatalf("expected yaml output; got:\n%s", stdout)
	}
}

func TestConfig_FileAndEnvironment(t *testing.T) {
	dir := isolateConfig(t)
	p := writeCatalog(t, smallCatalog)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("catalog: "+p+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DOCEXPLORER_TUI_GLYPHS", "ascii")

	env := mustEnv(t, "config", "show")
	cfg := env["data"].(map[string]any)
	if cfg["catalog"] != p {
		t.Fatalf("expected catalog from config file; got %v", cfg)
	}
	if cfg["tui"].(map[string]any)["glyphs"] != "ascii" {
		t.Fatalf("expected env override; got %v", cfg["tui"])
	}

	// The configured catalog is used when --catalog is not given.
	mustEnv(t, "show", "src/a.go")
}

func TestDocs(t *testing.T) {
	isolateConfig(t)

	topics := mustEnv(t, "docs")["data"].(map[string]any)["topics"].([]any)
	if len(topics) == 0 {
		t.Fatalf("expected topics")
	}
	first := topics[0].(map[string]any)
	if first["name"] != "catalog" || first["title"] != "Catalog format" {
		t.Fatalf("unexpected first topic %v", first)
	}
	stdout, _, err := runCLI(t, []string{"docs", "keys", "--raw"})
	if err != nil || len(stdout) == 0 {
		t.Fatalf("docs keys --raw: %v", err)
	}
}
