// Package tree derives a folder/file hierarchy from path-like identifiers and
// tracks which folders are expanded.
package tree

import (
	"sort"
	"strings"

	"docexplorer/internal/catalog"
)

type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

type Node struct {
	ID        string
	Kind      Kind
	Parent    string
	HasParent bool
	Depth     int
}

// Name is the last path segment of the node.
func (n Node) Name() string { return catalog.Base(n.ID) }

// Row is one visible line of the rendered tree.
type Row struct {
	Node     Node
	Expanded bool
	// ChildCount is the number of direct children (folders only).
	ChildCount int
}

// Model owns the hierarchy (built once) and the per-folder expanded flags.
type Model struct {
	nodes    map[string]*Node
	children map[string][]string
	roots    []string
	expanded map[string]bool
}

// Build creates a model from file identifiers. Every proper prefix of an
// identifier becomes a folder, as does any identifier that has descendants.
// extraFolders declares folders that have no files under them.
//
// Identifiers are used as given so that node ids match catalog ids; blank
// ones are skipped.
func Build(ids []string, extraFolders ...string) *Model {
	m := &Model{
		nodes:    map[string]*Node{},
		children: map[string][]string{},
		expanded: map[string]bool{},
	}

	add := func(id string, kind Kind) {
		if n, ok := m.nodes[id]; ok {
			if kind == KindFolder {
				n.Kind = KindFolder
			}
			return
		}
		parent := catalog.Dir(id)
		n := &Node{ID: id, Kind: kind, Parent: parent, HasParent: parent != ""}
		n.Depth = strings.Count(id, "/")
		m.nodes[id] = n
	}

	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			continue
		}
		segs := catalog.Split(id)
		for i := 1; i < len(segs); i++ {
			add(strings.Join(segs[:i], "/"), KindFolder)
		}
		add(id, KindFile)
	}
	for _, id := range extraFolders {
		if strings.TrimSpace(id) == "" {
			continue
		}
		segs := catalog.Split(id)
		for i := 1; i <= len(segs); i++ {
			add(strings.Join(segs[:i], "/"), KindFolder)
		}
	}

	for id, n := range m.nodes {
		if n.HasParent {
			m.children[n.Parent] = append(m.children[n.Parent], id)
		} else {
			m.roots = append(m.roots, id)
		}
	}
	m.sortIDs(m.roots)
	for pid := range m.children {
		m.sortIDs(m.children[pid])
	}
	return m
}

// FromStore builds a model from every identifier in the catalog.
func FromStore(s *catalog.Store) *Model {
	return Build(s.IDs())
}

// Folders first, then case-insensitive name, then raw id for stability.
func (m *Model) sortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := m.nodes[ids[i]], m.nodes[ids[j]]
		if a.Kind != b.Kind {
			return a.Kind == KindFolder
		}
		an, bn := strings.ToLower(a.Name()), strings.ToLower(b.Name())
		if an != bn {
			return an < bn
		}
		return a.ID < b.ID
	})
}

func (m *Model) Node(id string) (Node, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

func (m *Model) Kind(id string) (Kind, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return KindFile, false
	}
	return n.Kind, true
}

func (m *Model) IsFolder(id string) bool {
	k, ok := m.Kind(id)
	return ok && k == KindFolder
}

func (m *Model) Len() int { return len(m.nodes) }

func (m *Model) Parent(id string) (string, bool) {
	n, ok := m.nodes[id]
	if !ok || !n.HasParent {
		return "", false
	}
	return n.Parent, true
}

// Ancestors returns the parent chain of id, nearest first.
func (m *Model) Ancestors(id string) []string {
	var out []string
	for {
		p, ok := m.Parent(id)
		if !ok {
			return out
		}
		out = append(out, p)
		id = p
	}
}

func (m *Model) Roots() []string { return append([]string(nil), m.roots...) }

func (m *Model) Children(id string) []string {
	return append([]string(nil), m.children[id]...)
}

// Descendants returns every node below id in depth-first tree order.
func (m *Model) Descendants(id string) []string {
	var out []string
	var walk func(string)
	walk = func(pid string) {
		for _, cid := range m.children[pid] {
			out = append(out, cid)
			walk(cid)
		}
	}
	walk(id)
	return out
}

// IsExpanded reports the folder's state. Unknown ids and files are never expanded.
func (m *Model) IsExpanded(id string) bool {
	if !m.IsFolder(id) {
		return false
	}
	return m.expanded[id]
}

// SetExpanded is a no-op for anything that is not a folder.
func (m *Model) SetExpanded(id string, expanded bool) {
	if !m.IsFolder(id) {
		return
	}
	if expanded {
		m.expanded[id] = true
		return
	}
	delete(m.expanded, id)
}

// CollapseDescendants forces every folder under id back to collapsed and
// returns the ids whose state actually changed.
func (m *Model) CollapseDescendants(id string) []string {
	var changed []string
	for _, d := range m.Descendants(id) {
		if m.expanded[d] {
			delete(m.expanded, d)
			changed = append(changed, d)
		}
	}
	return changed
}

// Visible reports whether every ancestor of id is expanded.
func (m *Model) Visible(id string) bool {
	if _, ok := m.nodes[id]; !ok {
		return false
	}
	for _, a := range m.Ancestors(id) {
		if !m.expanded[a] {
			return false
		}
	}
	return true
}

// Reveal expands every ancestor of id so it becomes visible. Sibling
// subtrees keep their state.
func (m *Model) Reveal(id string) []string {
	var changed []string
	for _, a := range m.Ancestors(id) {
		if !m.expanded[a] {
			m.expanded[a] = true
			changed = append(changed, a)
		}
	}
	return changed
}

// ExpandAll opens every folder; used by non-interactive listings.
func (m *Model) ExpandAll() {
	for id, n := range m.nodes {
		if n.Kind == KindFolder {
			m.expanded[id] = true
		}
	}
}

// Rows flattens the visible part of the tree in display order.
func (m *Model) Rows() []Row {
	var out []Row
	var walk func(ids []string)
	walk = func(ids []string) {
		for _, id := range ids {
			n := m.nodes[id]
			row := Row{Node: *n}
			if n.Kind == KindFolder {
				row.Expanded = m.expanded[id]
				row.ChildCount = len(m.children[id])
			}
			out = append(out, row)
			if row.Expanded {
				walk(m.children[id])
			}
		}
	}
	walk(m.roots)
	return out
}

// Search matches query case-insensitively against each node's name and
// returns the hits in tree order. An empty query matches nothing.
func (m *Model) Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []string
	var walk func(ids []string)
	walk = func(ids []string) {
		for _, id := range ids {
			if strings.Contains(strings.ToLower(catalog.Base(id)), q) {
				out = append(out, id)
			}
			walk(m.children[id])
		}
	}
	walk(m.roots)
	return out
}
