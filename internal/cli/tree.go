package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docexplorer/internal/a11y"
	"docexplorer/internal/tree"
)

type rowOut struct {
	ID       string     `json:"id"`
	Kind     string     `json:"kind"`
	Depth    int        `json:"depth"`
	Expanded *bool      `json:"expanded,omitempty"`
	Children int        `json:"children,omitempty"`
	Attrs    a11y.Attrs `json:"attrs,omitempty"`
}

func newTreeCmd(app *App) *cobra.Command {
	var (
		expandAll bool
		expand    []string
		withAttrs bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the visible rows of the file tree",
		Example: strings.TrimSpace(`
# Top-level entries only
docexplorer tree

# Everything, with accessibility attributes
docexplorer tree --expand-all --a11y

# The rows after opening src and src/view
docexplorer tree --expand src --expand src/view
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			m := tree.FromStore(s)
			layer := a11y.New(m)
			ctl := tree.NewController(m, nil, layer)

			if expandAll {
				for _, root := range m.Roots() {
					ctl.Expand(root)
					for _, id := range m.Descendants(root) {
						ctl.Expand(id)
					}
				}
			}
			for _, id := range expand {
				id = strings.TrimSpace(id)
				if !m.IsFolder(id) {
					return errNotFound("folder", id)
				}
				ctl.Reveal(id)
				ctl.Expand(id)
			}
			if err := layer.Check(m, nil); err != nil {
				return fmt.Errorf("accessibility attributes out of sync: %w", err)
			}

			rows := m.Rows()
			out := make([]rowOut, 0, len(rows))
			for _, r := range rows {
				ro := rowOut{ID: r.Node.ID, Kind: r.Node.Kind.String(), Depth: r.Node.Depth}
				if r.Node.Kind == tree.KindFolder {
					expanded := r.Expanded
					ro.Expanded = &expanded
					ro.Children = r.ChildCount
				}
				if withAttrs {
					ro.Attrs, _ = layer.Node(r.Node.ID)
				}
				out = append(out, ro)
			}
			data := map[string]any{"rows": out}
			if withAttrs {
				data["root"] = layer.Root()
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}

	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "Expand every folder")
	cmd.Flags().StringArrayVar(&expand, "expand", nil, "Expand this folder (and reveal it); repeatable")
	cmd.Flags().BoolVar(&withAttrs, "a11y", false, "Include role/aria attributes per row")
	return cmd
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find files and folders whose name contains query (case-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			m := tree.FromStore(s)
			hits := []map[string]string{}
			for _, id := range m.Search(args[0]) {
				k, _ := m.Kind(id)
				hits = append(hits, map[string]string{"id": id, "kind": k.String()})
			}
			return writeOut(cmd, app, map[string]any{"data": hits})
		},
	}
}
