package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"docexplorer/internal/catalog"
	"docexplorer/internal/format"
	"docexplorer/internal/store"
	"docexplorer/internal/tui"
)

type App struct {
	CatalogPath string
	ConfigPath  string
	PrettyJSON  bool
	Format      string
	LogLevel    string
	LogFile     string

	// Debug turns on accessibility drift checks in the TUI.
	Debug bool

	cfg     *store.Config
	catalog *catalog.Store
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "docexplorer",
		Short:         "Browse a project's files and their documented dependencies",
		SilenceUsage:  true,
		SilenceErrors: true, // fang renders returned errors
		Example: strings.TrimSpace(`
  # Start the interactive explorer
  docexplorer

  # Use a different catalog
  docexplorer --catalog docs/files.yaml

  # Direct lookup (shortcut for: docexplorer show <path>)
  docexplorer src/view/cli/MainCLI.java
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.loadConfig(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.CatalogPath, "catalog", "", "Catalog file (.json, .yaml, .sqlite); default is the built-in catalog")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("DOCEXPLORER_CONFIG", ""), "Config file (default: ~/.docexplorer/config.yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DOCEXPLORER_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Write logs to this file (the TUI logs nowhere otherwise)")
	cmd.Flags().BoolVar(&app.Debug, "debug", false, "Check accessibility attributes after every update")

	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newDepsCmd(app))
	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newWebTUICmd(app))
	cmd.AddCommand(newSSHCmd(app))
	cmd.AddCommand(newMCPCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// loadConfig reads the config file and fills every persistent flag the user
// did not set explicitly.
func (app *App) loadConfig(cmd *cobra.Command) error {
	cfg, err := store.LoadConfig(app.ConfigPath)
	if err != nil {
		return err
	}
	app.cfg = cfg

	flags := cmd.Flags()
	if !flags.Changed("catalog") {
		app.CatalogPath = cfg.Catalog
	}
	if !flags.Changed("log-level") {
		app.LogLevel = cfg.LogLevel
	}
	if !flags.Changed("log-file") {
		app.LogFile = cfg.LogFile
	}
	return nil
}

// loadCatalog loads the catalog once per invocation.
func (app *App) loadCatalog(ctx context.Context) (*catalog.Store, error) {
	if app.catalog != nil {
		return app.catalog, nil
	}
	s, err := store.LoadCatalog(ctx, app.CatalogPath)
	if err != nil {
		return nil, err
	}
	app.catalog = s
	return s, nil
}

func (app *App) catalogSource() string {
	if p := strings.TrimSpace(app.CatalogPath); p != "" {
		return p
	}
	return "built-in"
}

func runTUI(cmd *cobra.Command, app *App) error {
	logger, closeLog, err := newTUILogger(app)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := app.loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	opts := tui.Options{
		Catalog: s,
		Source:  app.catalogSource(),
		Logger:  logger,
		Debug:   app.Debug,
	}
	if app.cfg != nil {
		opts.Glyphs = app.cfg.TUI.Glyphs
		opts.Theme = app.cfg.TUI.Theme
	}
	return tui.Run(opts)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}
