package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quickcap/internal/capture"
	"quickcap/internal/model"
	"quickcap/internal/sink"
	"quickcap/internal/store"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var modeFlag string
	var path string
	var dailyPath string

	cmd := &cobra.Command{
		Use:   "add [text...|-]",
		Short: "Submit a thought to the daily note, a standalone note or the endpoint",
		Long: strings.TrimSpace(`
Submits a thought without opening the capture screen. The mode defaults to the one
last selected in the TUI. The draft and the stash are left alone.
`),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				mode, err := repo.Mode(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				if strings.TrimSpace(modeFlag) != "" {
					if mode, err = model.ParseMode(modeFlag); err != nil {
						return writeErr(cmd, err)
					}
				}
				return submit(cmd, app, repo, submission{
					mode:      mode,
					text:      text,
					path:      path,
					dailyPath: dailyPath,
				})
			})
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "Mode (daily|standalone|endpoint; default: last selected)")
	cmd.Flags().StringVar(&path, "path", "", "Destination directory for this call (overrides the stored path for the mode)")
	cmd.Flags().StringVar(&dailyPath, "daily-path", "", "Daily-notes directory for standalone backlinks (overrides the stored daily path)")
	return cmd
}

func newPostCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "post [text...|-]",
		Short: "Send a thought to the configured endpoint",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				return submit(cmd, app, repo, submission{mode: model.ModeEndpoint, text: text})
			})
		},
	}
}

type submission struct {
	mode      model.Mode
	text      string
	path      string
	dailyPath string
}

// submit builds the request the same way the capture screen does and delivers it
// synchronously.
func submit(cmd *cobra.Command, app *App, repo *store.Repository, s submission) error {
	ctx := cmd.Context()
	cfg, err := app.config()
	if err != nil {
		return writeErr(cmd, err)
	}

	daily, standalone, err := repo.Paths(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	if p := strings.TrimSpace(s.dailyPath); p != "" {
		daily = p
	}
	if p := strings.TrimSpace(s.path); p != "" {
		switch s.mode {
		case model.ModeDaily:
			daily = p
		case model.ModeStandalone:
			standalone = p
		}
	}
	ep, err := repo.Endpoint(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}

	req, err := capture.NewRequest(s.mode, s.text, daily, standalone, ep)
	if err != nil {
		switch {
		case errors.Is(err, capture.ErrNoPath):
			err = fmt.Errorf("%w for %s mode (run: quickcap paths set --%s <dir>, or pass --path)", err, s.mode, s.mode)
		case errors.Is(err, capture.ErrNoEndpoint):
			err = fmt.Errorf("%w (run: quickcap endpoint set --url <url>)", err)
		}
		return writeErr(cmd, err)
	}

	log := app.logger()
	defer func() { _ = log.Sync() }()
	router := newRouter(cfg, log)

	out := map[string]any{"mode": s.mode}
	switch r := req.(type) {
	case *sink.FileRequest:
		file, err := router.Files.SaveNote(ctx, *r)
		if err != nil {
			return writeErr(cmd, &capture.SinkError{Err: err})
		}
		out["file"] = file
	case *sink.EndpointRequest:
		if err := router.HTTP.Post(ctx, *r); err != nil {
			return writeErr(cmd, &capture.SinkError{Err: err})
		}
		out["url"] = r.URL
	}
	out["status"] = capture.StatusSuccess.Message()

	return writeOut(cmd, app, map[string]any{"data": out})
}
