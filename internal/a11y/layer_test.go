package a11y

import (
	"testing"

	"docexplorer/internal/catalog"
	"docexplorer/internal/modal"
	"docexplorer/internal/tree"
)

func TestNew_SeedsAttributes(t *testing.T) {
	t.Parallel()

	m := tree.Build([]string{"src/a.go", "README.md"})
	l := New(m)

	src, ok := l.Node("src")
	if !ok {
		t.Fatalf("expected src attributes")
	}
	if src["role"] != "treeitem" || src["aria-expanded"] != "false" || src["aria-level"] != "1" || src["tabindex"] != "0" {
		t.Fatalf("unexpected folder attrs %v", src)
	}
	file, _ := l.Node("src/a.go")
	if file["aria-describedby"] != DescriptionElement || file["aria-level"] != "2" {
		t.Fatalf("unexpected file attrs %v", file)
	}
	if _, ok := file["aria-expanded"]; ok {
		t.Fatalf("files must not carry aria-expanded")
	}
	if root := l.Root(); root["role"] != "tree" || root["aria-label"] != TreeLabel {
		t.Fatalf("unexpected root attrs %v", root)
	}
	if d := l.Dialog(); d["aria-hidden"] != "true" || d["role"] != "dialog" || d["aria-modal"] != "true" {
		t.Fatalf("unexpected dialog attrs %v", d)
	}
}

func TestCheck_StaysInSyncThroughEvents(t *testing.T) {
	t.Parallel()

	store := catalog.Default()
	m := tree.FromStore(store)
	l := New(m)
	mc := modal.New(store, nil, l)
	tc := tree.NewController(m, mc, l)

	steps := []string{
		"src", "src/view", "src/view/cli", "src/view/cli/MainCLI.java",
		"src", "src", "README.md", "docs",
	}
	for _, id := range steps {
		tc.Activate(id)
		if err := l.Check(m, mc); err != nil {
			t.Fatalf("after %q: %v", id, err)
		}
	}
	mc.ActivateDependency(0)
	mc.Dismiss(modal.DismissEscape)
	tc.Reveal("src/view/frontend/MainGUI.java")
	if err := l.Check(m, mc); err != nil {
		t.Fatalf("final check: %v", err)
	}
}

func TestCheck_ReportsDrift(t *testing.T) {
	t.Parallel()

	m := tree.Build([]string{"src/a.go"})
	l := New(m)
	m.SetExpanded("src", true)
	if err := l.Check(m, nil); err == nil {
		t.Fatalf("expected drift when the model changes behind the layer")
	}
}

func TestAnnounce(t *testing.T) {
	t.Parallel()

	m := tree.Build([]string{"src/a.go", "src/b.go", "README.md"})
	l := New(m)
	tc := tree.NewController(m, nil, l)
	tc.Activate("src")

	if got, want := l.Announce("src"), "folder src, expanded, level 1, 2 items"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got, want := l.Announce("src/a.go"), "file a.go, level 2"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if l.Announce("missing") != "" {
		t.Fatalf("expected empty announcement for unknown id")
	}
}
