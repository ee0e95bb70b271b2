package cli

import (
	"github.com/spf13/cobra"

	"docexplorer/internal/store"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective config (defaults, file and environment merged)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{
				"data": app.cfg,
				"meta": map[string]any{"path": app.cfg.Path()},
			})
		},
	})

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective config to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := store.SaveConfig(app.cfg, path)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": written}})
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "Target file (default: config.yaml in the config dir)")
	cmd.AddCommand(initCmd)

	return cmd
}
