package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docexplorer/internal/catalog"
)

var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// ReadRecords loads raw records from path, choosing the decoder by file
// extension. An empty path yields the built-in catalog.
func ReadRecords(ctx context.Context, path string) (map[string]catalog.Record, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return catalog.DecodeYAML(catalog.DefaultYAML())
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return catalog.DecodeJSON(b)
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return catalog.DecodeYAML(b)
	case ".sqlite", ".db":
		return LoadSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadCatalog reads and validates the catalog at path.
func LoadCatalog(ctx context.Context, path string) (*catalog.Store, error) {
	if strings.TrimSpace(path) == "" {
		return catalog.Default(), nil
	}
	records, err := ReadRecords(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	s, err := catalog.New(records)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return s, nil
}
