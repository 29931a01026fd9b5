package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"quickcap/internal/capture"
	"quickcap/internal/draft"
	"quickcap/internal/format"
	"quickcap/internal/logging"
	"quickcap/internal/sink"
	"quickcap/internal/stash"
	"quickcap/internal/store"
	"quickcap/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Store      string
	DB         string
	LogLevel   string
	PrettyJSON bool
	Format     string

	cfg *store.GlobalConfig
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "quickcap",
		Short:        "Quick capture for notes: daily files, standalone notes or an HTTP endpoint",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the capture screen
  quickcap

  # Append a thought to today's daily note
  quickcap add "call the plumber"

  # Pipe a thought in
  echo "from a script" | quickcap -

  # Send to the configured endpoint
  quickcap post "meeting notes"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !validFormat(app.Format) {
			return writeErr(cmd, fmt.Errorf("invalid --format %q (want %s)", app.Format, strings.Join(format.Formats, "|")))
		}
		if app.LogLevel != "" && !logging.ValidLevel(app.LogLevel) {
			return writeErr(cmd, fmt.Errorf("invalid --log-level %q", app.LogLevel))
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Store, "store", envOr("QUICKCAP_STORE", ""), "Store backend (sqlite|redis|memory; default from config, then sqlite)")
	cmd.PersistentFlags().StringVar(&app.DB, "db", envOr("QUICKCAP_DB", ""), "Path to the SQLite store file")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("QUICKCAP_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("QUICKCAP_FORMAT", "json"), "Output format (json|edn|yaml)")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newPostCmd(app))
	cmd.AddCommand(newStashCmd(app))
	cmd.AddCommand(newEndpointCmd(app))
	cmd.AddCommand(newDraftCmd(app))
	cmd.AddCommand(newPathsCmd(app))
	cmd.AddCommand(newModeCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	cfg, err := app.config()
	if err != nil {
		return writeErr(cmd, err)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logPath, err := cfg.LogPath()
	if err != nil {
		return writeErr(cmd, err)
	}
	log, err := logging.NewWithOptions(logging.Options{Level: app.logLevel(cfg, "info"), Output: logPath})
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = log.Sync() }()

	kv, err := app.openKV(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = kv.Close() }()
	repo := store.NewRepository(kv)

	saver := draft.NewAutosaver(repo, draft.Options{Debounce: cfg.DraftDebounce(), Logger: log})
	sess, err := capture.Open(ctx, capture.Deps{
		Repo:   repo,
		Stash:  stash.New(repo),
		Draft:  saver,
		Logger: log,
	})
	if err != nil {
		return writeErr(cmd, err)
	}

	return tui.Run(tui.Options{
		Session:      sess,
		Sink:         newRouter(cfg, log),
		StatusRevert: cfg.StatusRevert(),
		Logger:       log,
	})
}

func newRouter(cfg *store.GlobalConfig, log logging.Logger) *sink.Router {
	return &sink.Router{
		Files: sink.NewFileSink(log),
		HTTP:  sink.NewHTTPSink(cfg.HTTPTimeout(), log),
	}
}

// config loads ~/.quickcap/config.json once per invocation.
func (app *App) config() (*store.GlobalConfig, error) {
	if app.cfg != nil {
		return app.cfg, nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	app.cfg = cfg
	return cfg, nil
}

// storeConfig applies --store/--db over the config file.
func (app *App) storeConfig(cfg *store.GlobalConfig) store.StoreConfig {
	sc := cfg.Store
	if strings.TrimSpace(app.Store) != "" {
		sc.Backend = strings.TrimSpace(app.Store)
	}
	if strings.TrimSpace(app.DB) != "" {
		sc.Path = strings.TrimSpace(app.DB)
	}
	return sc
}

func (app *App) openKV(ctx context.Context) (store.KV, error) {
	cfg, err := app.config()
	if err != nil {
		return nil, err
	}
	kv, err := store.OpenKV(ctx, app.storeConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return kv, nil
}

// withRepo opens the store for the duration of fn.
func (app *App) withRepo(cmd *cobra.Command, fn func(ctx context.Context, repo *store.Repository) error) error {
	kv, err := app.openKV(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = kv.Close() }()
	return fn(cmd.Context(), store.NewRepository(kv))
}

func (app *App) logLevel(cfg *store.GlobalConfig, def string) string {
	if app.LogLevel != "" {
		return app.LogLevel
	}
	if cfg != nil && cfg.LogLevel != "" {
		return cfg.LogLevel
	}
	return def
}

// logger writes to stderr; commands stay quiet below warn unless asked.
func (app *App) logger() logging.Logger {
	cfg, _ := app.config()
	log, err := logging.New(app.logLevel(cfg, "warn"), false)
	if err != nil {
		return logging.Nop()
	}
	return log
}

func validFormat(f string) bool {
	if f == "yml" {
		return true
	}
	for _, x := range format.Formats {
		if f == x {
			return true
		}
	}
	return false
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

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
