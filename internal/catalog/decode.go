package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the catalog compiled into the binary.
func Default() *Store {
	defaultOnce.Do(func() {
		records, err := DecodeYAML(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		s, err := New(records)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultStore = s
	})
	return defaultStore
}

// DefaultYAML returns the raw embedded catalog.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultCatalogYAML...)
}

// DecodeJSON parses a JSON object of identifier -> record.
func DecodeJSON(b []byte) (map[string]Record, error) {
	var out map[string]Record
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode json catalog: %w", err)
	}
	return normalize(out), nil
}

// DecodeYAML parses a YAML mapping of identifier -> record.
func DecodeYAML(b []byte) (map[string]Record, error) {
	var out map[string]Record
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode yaml catalog: %w", err)
	}
	return normalize(out), nil
}

func normalize(in map[string]Record) map[string]Record {
	if in == nil {
		return map[string]Record{}
	}
	for id, rec := range in {
		if rec.Dependencies == nil {
			rec.Dependencies = []string{}
			in[id] = rec
		}
	}
	return in
}
