package tree

import (
	"reflect"
	"testing"
)

func sampleModel() *Model {
	return Build([]string{
		"src/bacheca/Annuncio.java",
		"src/bacheca/Utente.java",
		"src/controller/GestoreBacheca.java",
		"src/view/cli/MainCLI.java",
		"src/view/frontend/MainGUI.java",
		"README.md",
		"docs/Progetto 24-25.pdf",
	}, "empty")
}

func TestBuild_DerivesFoldersAndParents(t *testing.T) {
	t.Parallel()

	m := sampleModel()

	tests := []struct {
		id     string
		kind   Kind
		parent string
	}{
		{id: "src", kind: KindFolder, parent: ""},
		{id: "src/view", kind: KindFolder, parent: "src"},
		{id: "src/view/cli", kind: KindFolder, parent: "src/view"},
		{id: "src/view/cli/MainCLI.java", kind: KindFile, parent: "src/view/cli"},
		{id: "README.md", kind: KindFile, parent: ""},
		{id: "empty", kind: KindFolder, parent: ""},
	}
	for _, tt := range tests {
		n, ok := m.Node(tt.id)
		if !ok {
			t.Fatalf("missing node %q", tt.id)
		}
		if n.Kind != tt.kind {
			t.Fatalf("%q kind=%v want %v", tt.id, n.Kind, tt.kind)
		}
		p, hasParent := m.Parent(tt.id)
		if p != tt.parent || hasParent != (tt.parent != "") {
			t.Fatalf("%q parent=%q,%v want %q", tt.id, p, hasParent, tt.parent)
		}
	}

	if got, want := m.Roots(), []string{"docs", "empty", "src", "README.md"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("roots=%v want %v", got, want)
	}
	if got, want := m.Children("src/view"), []string{"src/view/cli", "src/view/frontend"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("children=%v want %v", got, want)
	}
	if got, want := m.Ancestors("src/view/cli/MainCLI.java"), []string{"src/view/cli", "src/view", "src"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ancestors=%v want %v", got, want)
	}
}

func TestBuild_PrefixIdentifierBecomesFolder(t *testing.T) {
	t.Parallel()

	m := Build([]string{"lib", "lib/a.go"})
	if !m.IsFolder("lib") {
		t.Fatalf("expected identifier with descendants to be a folder")
	}
}

func TestSetExpanded_NoopForFilesAndUnknown(t *testing.T) {
	t.Parallel()

	m := sampleModel()
	m.SetExpanded("README.md", true)
	m.SetExpanded("nope", true)
	if m.IsExpanded("README.md") || m.IsExpanded("nope") {
		t.Fatalf("files and unknown ids must never be expanded")
	}
	if m.IsExpanded("src") {
		t.Fatalf("folders default to collapsed")
	}
	m.SetExpanded("src", true)
	if !m.IsExpanded("src") {
		t.Fatalf("expected src expanded")
	}
}

func TestCollapseDescendants_AnyDepth(t *testing.T) {
	t.Parallel()

	m := sampleModel()
	for _, id := range []string{"src", "src/view", "src/view/cli", "src/bacheca"} {
		m.SetExpanded(id, true)
	}
	changed := m.CollapseDescendants("src")
	if len(changed) != 3 {
		t.Fatalf("expected 3 descendants reset; got %v", changed)
	}
	for _, id := range []string{"src/view", "src/view/cli", "src/bacheca"} {
		if m.IsExpanded(id) {
			t.Fatalf("expected %q collapsed", id)
		}
	}
	if !m.IsExpanded("src") {
		t.Fatalf("CollapseDescendants must not touch the folder itself")
	}
}

func TestRows_OnlyVisible(t *testing.T) {
	t.Parallel()

	m := sampleModel()
	if got := len(m.Rows()); got != 4 {
		t.Fatalf("expected only roots visible; got %d rows", got)
	}
	m.SetExpanded("src", true)
	m.SetExpanded("src/view", true)

	var ids []string
	for _, r := range m.Rows() {
		ids = append(ids, r.Node.ID)
	}
	want := []string{
		"docs", "empty", "src",
		"src/bacheca", "src/controller", "src/view",
		"src/view/cli", "src/view/frontend",
		"README.md",
	}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("rows=%v\nwant %v", ids, want)
	}
	if !m.Visible("src/view/cli") || m.Visible("src/view/cli/MainCLI.java") {
		t.Fatalf("unexpected visibility")
	}
}

func TestRevealAndSearch(t *testing.T) {
	t.Parallel()

	m := sampleModel()
	changed := m.Reveal("src/view/frontend/MainGUI.java")
	if len(changed) != 3 || !m.Visible("src/view/frontend/MainGUI.java") {
		t.Fatalf("expected reveal to expand 3 ancestors; got %v", changed)
	}

	if got, want := m.Search("main"), []string{"src/view/cli/MainCLI.java", "src/view/frontend/MainGUI.java"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("search=%v want %v", got, want)
	}
	if got := m.Search("  "); got != nil {
		t.Fatalf("expected empty query to match nothing; got %v", got)
	}
}
