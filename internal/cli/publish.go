package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"docexplorer/internal/publish"
)

func newPublishCmd(app *App) *cobra.Command {
	var (
		toDir     string
		html      bool
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write an index plus one Markdown (or HTML) page per file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				return errors.New("missing --to")
			}
			res, err := publish.WriteAll(s, toDir, publish.WriteOptions{HTML: html, Overwrite: overwrite})
			if err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().BoolVar(&html, "html", false, "Render HTML pages instead of Markdown")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	return cmd
}
