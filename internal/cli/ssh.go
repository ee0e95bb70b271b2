package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docexplorer/internal/sshui"
	"docexplorer/internal/tui"
)

func newSSHCmd(app *App) *cobra.Command {
	var addr, hostKey string

	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve the explorer over SSH (one session per connection)",
		Args:  cobra.NoArgs,
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

			if app.cfg != nil {
				if !cmd.Flags().Changed("addr") {
					addr = app.cfg.SSH.Addr
				}
				if !cmd.Flags().Changed("host-key") {
					hostKey = app.cfg.SSH.HostKey
				}
				tui.ApplyPreferences(tui.Options{Glyphs: app.cfg.TUI.Glyphs, Theme: app.cfg.TUI.Theme})
			}

			srv, err := sshui.New(sshui.Config{
				Addr:        addr,
				HostKeyPath: hostKey,
				Catalog:     s,
				Source:      app.catalogSource(),
				Logger:      logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "docexplorer ssh listening on %s (ssh -p <port> <host>)\n", srv.Addr())
			if err := srv.ListenAndServe(cmd.Context()); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:2323", "Bind address")
	cmd.Flags().StringVar(&hostKey, "host-key", "", "Host key path (generated when missing)")
	return cmd
}
