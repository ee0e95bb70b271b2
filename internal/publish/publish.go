// Package publish writes the catalog out as static markdown or HTML pages.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"docexplorer/internal/catalog"
)

type WriteOptions struct {
	HTML      bool
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteAll writes an index page plus one page per catalog entry under toDir.
func WriteAll(s *catalog.Store, toDir string, opt WriteOptions) (WriteResult, error) {
	if s == nil {
		return WriteResult{}, errors.New("missing catalog")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	ext := ".md"
	if opt.HTML {
		ext = ".html"
	}

	var res WriteResult
	write := func(rel, title, md string) error {
		body := md
		if opt.HTML {
			page, err := RenderHTMLPage(title, md)
			if err != nil {
				return err
			}
			body = page
		}
		outPath := filepath.Join(toDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		if err := writeFile(outPath, []byte(body), opt.Overwrite); err != nil {
			return err
		}
		res.Written = append(res.Written, outPath)
		return nil
	}

	if err := write("index"+ext, "Project files", RenderIndexMarkdown(s, ext)); err != nil {
		return WriteResult{}, err
	}
	for _, id := range s.IDs() {
		md, err := RenderFileMarkdown(s, id, ext)
		if err != nil {
			return WriteResult{}, err
		}
		if err := write(pagePath(id, ext), catalog.Base(id), md); err != nil {
			return WriteResult{}, err
		}
	}
	return res, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
