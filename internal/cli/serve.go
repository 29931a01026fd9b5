package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"quickcap/internal/inbox"
	"quickcap/internal/logging"
	"quickcap/internal/model"
	"quickcap/internal/sink"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var flags inbox.Config
	var auth string
	var pretty bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the inbox: receive endpoint posts and append them to the daily note",
		Long: strings.TrimSpace(`
Runs an HTTP server accepting the JSON body endpoint mode sends
({"timestamp": ..., "body": ...}) on POST /api/capture, and appends each body to
today's note in --dir. GET /healthz reports liveness. Flags override the "inbox"
section of the config file.
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}

			ic := inbox.Config{
				Addr:     cfg.Inbox.Addr,
				Dir:      cfg.Inbox.Dir,
				AuthType: model.AuthType(strings.ToLower(cfg.Inbox.AuthType)),
				Token:    cfg.Inbox.Token,
				Username: cfg.Inbox.Username,
				Password: cfg.Inbox.Password,
			}
			f := cmd.Flags()
			if f.Changed("addr") {
				ic.Addr = flags.Addr
			}
			if f.Changed("dir") {
				ic.Dir = flags.Dir
			}
			if f.Changed("auth") {
				ic.AuthType = model.AuthType(strings.ToLower(strings.TrimSpace(auth)))
			}
			// Env defaults fill in only what the config leaves empty.
			if f.Changed("token") || (ic.Token == "" && flags.Token != "") {
				ic.Token = flags.Token
			}
			if f.Changed("username") {
				ic.Username = flags.Username
			}
			if f.Changed("password") || (ic.Password == "" && flags.Password != "") {
				ic.Password = flags.Password
			}
			if ic.Dir == "" {
				return writeErr(cmd, errors.New("missing --dir (or inbox.dir in config)"))
			}
			if ic.Dir, err = cleanDir(ic.Dir); err != nil {
				return writeErr(cmd, err)
			}

			log, err := logging.New(app.logLevel(cfg, "info"), pretty)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = log.Sync() }()

			srv, err := inbox.New(ic, sink.NewFileSink(log), log)
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				if err != nil {
					return writeErr(cmd, err)
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				return writeErr(cmd, err)
			}
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&flags.Addr, "addr", inbox.DefaultAddr, "Listen address")
	cmd.Flags().StringVar(&flags.Dir, "dir", "", "Daily-notes directory captures are appended to")
	cmd.Flags().StringVar(&auth, "auth", "none", "Required auth (none|bearer|basic)")
	cmd.Flags().StringVar(&flags.Token, "token", envOr("QUICKCAP_INBOX_TOKEN", ""), "Bearer token")
	cmd.Flags().StringVar(&flags.Username, "username", "", "Basic auth username")
	cmd.Flags().StringVar(&flags.Password, "password", envOr("QUICKCAP_INBOX_PASSWORD", ""), "Basic auth password")
	cmd.Flags().BoolVar(&pretty, "pretty-logs", false, "Colourised development logs")
	return cmd
}
