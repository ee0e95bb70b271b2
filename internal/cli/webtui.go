package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"docexplorer/internal/webtui"
)

func newWebTUICmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "webtui",
		Short: "Run the explorer in your browser (PTY + WebSocket)",
		Long: strings.TrimSpace(`
Serve the interactive explorer over the web via a server-side PTY and a
browser terminal emulator.

Notes:
- No authentication; bind to localhost unless you know better.
- Each browser tab starts its own explorer process on the server.
`),
		Example: strings.TrimSpace(`
# Serve the built-in catalog on localhost
docexplorer webtui --addr 127.0.0.1:8088

# Serve a specific catalog
docexplorer --catalog files.yaml webtui
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Fail fast on a bad catalog instead of in every session.
			if _, err := app.loadCatalog(cmd.Context()); err != nil {
				return err
			}
			logger, closeLog, err := newLogger(app, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			if !cmd.Flags().Changed("addr") && app.cfg != nil {
				addr = app.cfg.Web.Addr
			}
			srv, err := webtui.NewServer(webtui.ServerConfig{
				Addr:    addr,
				Catalog: strings.TrimSpace(app.CatalogPath),
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			handler, err := srv.Handler()
			if err != nil {
				return err
			}

			listenAddr := srv.Addr()
			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      listenAddr,
					"catalog":   app.catalogSource(),
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": []string{"open http://" + listenAddr},
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "docexplorer webtui running at http://%s\n", listenAddr)

			hs := &http.Server{Addr: listenAddr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
			errCh := make(chan error, 1)
			go func() { errCh <- hs.ListenAndServe() }()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return hs.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8088", "Bind address (host:port or :port)")
	return cmd
}
