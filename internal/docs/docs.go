// Package docs holds the help topics shipped inside the binary: the key map,
// the catalog file format and the configuration reference.
package docs

import (
	"bufio"
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed content/*.md
var topicFS embed.FS

// Topic is one help page. Title is the page's first markdown heading.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Topics lists every embedded page by name.
func Topics() []Topic {
	files, err := fs.Glob(topicFS, "content/*.md")
	if err != nil {
		return nil
	}
	out := make([]Topic, 0, len(files))
	for _, p := range files {
		name := strings.TrimSuffix(path.Base(p), ".md")
		body, err := topicFS.ReadFile(p)
		if err != nil {
			continue
		}
		out = append(out, Topic{Name: name, Title: heading(string(body), name)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns the markdown of a topic. Names are case-insensitive.
func Get(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	b, err := topicFS.ReadFile(path.Join("content", name+".md"))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func heading(body, fallback string) string {
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if t, ok := strings.CutPrefix(line, "#"); ok {
			return strings.TrimSpace(strings.TrimLeft(t, "#"))
		}
		break
	}
	return fallback
}
