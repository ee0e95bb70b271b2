package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docexplorer/internal/catalog"
	"docexplorer/internal/store"
)

type unresolvedOut struct {
	File       string `json:"file"`
	Dependency string `json:"dependency"`
}

func newValidateCmd(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and report problems",
		Long: strings.TrimSpace(`
Load and validate the catalog. Invalid identifiers are errors. Dependencies
without a record of their own are reported as warnings (they render as plain
text); --strict turns them into an error.
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := newLogger(app, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			s, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			warnings := []unresolvedOut{}
			for _, pair := range s.Unresolved() {
				logger.Warn("unresolved dependency", "file", pair[0], "dependency", pair[1])
				warnings = append(warnings, unresolvedOut{File: pair[0], Dependency: pair[1]})
			}
			if err := writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"catalog":    app.catalogSource(),
					"files":      s.Len(),
					"unresolved": warnings,
				},
			}); err != nil {
				return err
			}
			if strict && len(warnings) > 0 {
				return fmt.Errorf("%d unresolved dependencies", len(warnings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any dependency is unresolved")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog to a SQLite database",
		Example: strings.TrimSpace(`
docexplorer --catalog files.yaml export --to files.sqlite
docexplorer --catalog files.sqlite show README.md
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			to = strings.TrimSpace(to)
			if to == "" {
				return errors.New("missing --to")
			}
			records, err := store.ReadRecords(cmd.Context(), app.CatalogPath)
			if err != nil {
				return err
			}
			// Refuse to export what could not be loaded back.
			if _, err := catalog.New(records); err != nil {
				return err
			}
			if err := store.SaveSQLite(cmd.Context(), to, records); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{
				"data":   map[string]any{"path": to, "files": len(records)},
				"_hints": []string{"docexplorer --catalog " + to},
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "SQLite file to write (replaced if it exists)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
