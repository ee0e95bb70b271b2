package cli

import (
	"github.com/spf13/cobra"

	"docexplorer/internal/mcpserver"
)

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve catalog lookups as MCP tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			// stdout carries the protocol; logs go to stderr or --log-file.
			logger, closeLog, err := newLogger(app, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			return mcpserver.New(s, cmd.Root().Version, logger).ServeStdio()
		},
	}
}
