// Package catalog is the read-only metadata store behind the explorer.
//
// A catalog maps a file identifier ("/"-delimited path) to a Record. It is
// loaded once, validated, and never mutated afterwards. Dependencies are
// resolved against the catalog at construction time so callers can branch on
// a precomputed variant instead of probing the store again.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidID is returned (wrapped) when a catalog key is not a usable identifier.
var ErrInvalidID = errors.New("invalid identifier")

// Record is the static metadata attached to one identifier.
type Record struct {
	Icon         string   `json:"icon" yaml:"icon"`
	Description  string   `json:"description" yaml:"description"`
	Usage        string   `json:"usage" yaml:"usage"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
}

type DependencyKind int

const (
	DependencyUnresolved DependencyKind = iota
	DependencyResolved
)

func (k DependencyKind) String() string {
	if k == DependencyResolved {
		return "resolved"
	}
	return "unresolved"
}

// Dependency is one entry of a record's dependency list. Record is set only
// when Kind == DependencyResolved.
type Dependency struct {
	Kind   DependencyKind
	ID     string
	Record *Record
}

func (d Dependency) Resolved() bool { return d.Kind == DependencyResolved }

// Entry is a record together with its precomputed dependencies.
type Entry struct {
	ID     string
	Record Record
	Deps   []Dependency
}

type Store struct {
	entries map[string]*Entry
	ids     []string
}

// New validates every identifier and resolves dependency lists. Referenced
// identifiers that have no record are kept as unresolved entries; that is not
// an error.
func New(records map[string]Record) (*Store, error) {
	s := &Store{
		entries: make(map[string]*Entry, len(records)),
		ids:     make([]string, 0, len(records)),
	}
	for id, rec := range records {
		if err := ValidateID(id); err != nil {
			return nil, err
		}
		rec.Dependencies = append([]string(nil), rec.Dependencies...)
		s.entries[id] = &Entry{ID: id, Record: rec}
		s.ids = append(s.ids, id)
	}
	sort.Strings(s.ids)

	for _, id := range s.ids {
		e := s.entries[id]
		deps := make([]Dependency, 0, len(e.Record.Dependencies))
		for _, dep := range e.Record.Dependencies {
			if target, ok := s.entries[dep]; ok {
				deps = append(deps, Dependency{Kind: DependencyResolved, ID: dep, Record: &target.Record})
				continue
			}
			deps = append(deps, Dependency{Kind: DependencyUnresolved, ID: dep})
		}
		e.Deps = deps
	}
	return s, nil
}

// Lookup returns the entry for id. A missing id is a normal outcome.
func (s *Store) Lookup(id string) (*Entry, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.entries[id]
	return e, ok
}

// IDs returns all identifiers in lexical order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.ids...)
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Unresolved lists every (owner, dependency) pair whose target has no record.
func (s *Store) Unresolved() [][2]string {
	if s == nil {
		return nil
	}
	var out [][2]string
	for _, id := range s.ids {
		for _, d := range s.entries[id].Deps {
			if !d.Resolved() {
				out = append(out, [2]string{id, d.ID})
			}
		}
	}
	return out
}

// ValidateID checks the path-like shape of an identifier.
func ValidateID(id string) error {
	err := validation.Validate(id,
		validation.Required,
		validation.By(func(v interface{}) error {
			s, _ := v.(string)
			if strings.TrimSpace(s) != s {
				return errors.New("must not start or end with whitespace")
			}
			if strings.HasPrefix(s, "/") || strings.HasSuffix(s, "/") {
				return errors.New("must not start or end with /")
			}
			for _, seg := range strings.Split(s, "/") {
				if strings.TrimSpace(seg) == "" {
					return errors.New("must not contain empty segments")
				}
			}
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidID, id, err)
	}
	return nil
}

// Split returns the path segments of id.
func Split(id string) []string {
	if id == "" {
		return nil
	}
	return strings.Split(id, "/")
}

// Base returns the last path segment of id. It is used as the display title.
func Base(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Dir returns id without its last segment, or "" for a top-level identifier.
func Dir(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[:i]
	}
	return ""
}
