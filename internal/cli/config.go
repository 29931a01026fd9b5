package cli

import (
	"quickcap/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Global configuration (~/.quickcap/config.json)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration (secrets masked)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}
			shown := *cfg
			shown.Store = app.storeConfig(cfg)
			shown.Store.Redis.Password = mask(shown.Store.Redis.Password)
			shown.Inbox.Token = mask(shown.Inbox.Token)
			shown.Inbox.Password = mask(shown.Inbox.Password)
			return writeOut(cmd, app, map[string]any{
				"data": shown,
				"meta": map[string]any{
					"draftDebounce": cfg.DraftDebounce().String(),
					"statusRevert":  cfg.StatusRevert().String(),
					"httpTimeout":   cfg.HTTPTimeout().String(),
				},
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show where configuration, store and log live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := store.ConfigDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			logPath, err := cfg.LogPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":    dir,
					"config": path,
					"log":    logPath,
				},
			})
		},
	})

	return cmd
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
