package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docexplorer/internal/docs"
)

// newDocsCmd prints the embedded help pages: the key map, the catalog format
// and the config reference.
func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show on-demand documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				hints := make([]string, 0, len(topics))
				for _, tp := range topics {
					hints = append(hints, "docexplorer docs "+tp.Name)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": topics}, "_hints": hints})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return fmt.Errorf("unknown docs topic: %q (run `docexplorer docs` to list topics)", topic)
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": topic, "markdown": body}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no envelope)")
	return cmd
}
