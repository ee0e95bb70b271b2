package publish

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"docexplorer/internal/catalog"
	"docexplorer/internal/modal"
	"docexplorer/internal/tree"
)

// pagePath is where the page for id lives, relative to the output root.
func pagePath(id, ext string) string {
	return path.Join("files", id+ext)
}

// relLink returns the link from the page of `from` to the page of `to`.
func relLink(from, to, ext string) string {
	fromDir := path.Dir(pagePath(from, ext))
	target := pagePath(to, ext)
	up := strings.Count(fromDir, "/") + 1
	return strings.Repeat("../", up) + target
}

// RenderFileMarkdown renders the page for one catalog entry. Dependencies that
// have a record become relative links; the rest stay plain text.
func RenderFileMarkdown(s *catalog.Store, id, ext string) (string, error) {
	e, ok := s.Lookup(strings.TrimSpace(id))
	if !ok {
		return "", fmt.Errorf("file not found: %s", id)
	}

	var buf bytes.Buffer
	writeLn := func(line string) {
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	writeLn("# " + catalog.Base(e.ID))
	writeLn("")
	writeLn("- Path: `" + e.ID + "`")
	if icon := strings.TrimSpace(e.Record.Icon); icon != "" {
		writeLn("- Icon: `" + icon + "`")
	}
	writeLn("")

	if d := strings.TrimSpace(e.Record.Description); d != "" {
		writeLn("## Description")
		writeLn("")
		writeLn(d)
		writeLn("")
	}
	if u := strings.TrimSpace(e.Record.Usage); u != "" {
		writeLn("## Usage")
		writeLn("")
		writeLn(u)
		writeLn("")
	}

	writeLn("## Dependencies")
	writeLn("")
	if len(e.Deps) == 0 {
		writeLn("_" + modal.NoDependenciesText + "_")
	}
	for _, d := range e.Deps {
		if d.Resolved() {
			writeLn(fmt.Sprintf("- [%s](%s)", d.ID, relLink(e.ID, d.ID, ext)))
			continue
		}
		writeLn("- `" + d.ID + "`")
	}

	writeLn("")
	writeLn("[Index](" + strings.Repeat("../", strings.Count(e.ID, "/")+1) + "index" + ext + ")")
	return buf.String(), nil
}

// RenderIndexMarkdown renders the whole tree, fully expanded, with a link per file.
func RenderIndexMarkdown(s *catalog.Store, ext string) string {
	m := tree.FromStore(s)
	m.ExpandAll()

	var buf bytes.Buffer
	buf.WriteString("# Project files\n\n")
	for _, r := range m.Rows() {
		indent := strings.Repeat("  ", r.Node.Depth)
		if r.Node.Kind == tree.KindFolder {
			buf.WriteString(fmt.Sprintf("%s- **%s/**\n", indent, r.Node.Name()))
			continue
		}
		if _, ok := s.Lookup(r.Node.ID); ok {
			buf.WriteString(fmt.Sprintf("%s- [%s](%s)\n", indent, r.Node.Name(), pagePath(r.Node.ID, ext)))
			continue
		}
		buf.WriteString(fmt.Sprintf("%s- %s\n", indent, r.Node.Name()))
	}
	return buf.String()
}
