package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"docexplorer/internal/modal"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: "Show what the details dialog shows for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(app, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			id := strings.TrimSpace(args[0])
			c := modal.New(s, logger)
			if !c.Open(id) {
				return errNotFound("file", id)
			}
			view, _ := c.View()

			var hints []string
			for _, e := range view.Entries {
				if e.Interactive {
					hints = append(hints, "docexplorer show "+e.Target)
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data":   view,
				"_hints": hints,
			})
		},
	}
}

type depOut struct {
	Path   string `json:"path"`
	Status string `json:"status"`
}

func newDepsCmd(app *App) *cobra.Command {
	var unresolvedOnly bool

	cmd := &cobra.Command{
		Use:   "deps <path>",
		Short: "List a file's dependencies and whether each one has a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])
			e, ok := s.Lookup(id)
			if !ok {
				return errNotFound("file", id)
			}
			out := []depOut{}
			for _, d := range e.Deps {
				if unresolvedOnly && d.Resolved() {
					continue
				}
				out = append(out, depOut{Path: d.ID, Status: d.Kind.String()})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().BoolVar(&unresolvedOnly, "unresolved", false, "Only list dependencies without a record")
	return cmd
}
