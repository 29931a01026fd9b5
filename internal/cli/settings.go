package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"quickcap/internal/capture"
	"quickcap/internal/model"
	"quickcap/internal/store"

	"github.com/spf13/cobra"
)

func newPathsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Daily and standalone note directories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the stored directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				daily, standalone, err := repo.Paths(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, pathsData(daily, standalone))
			})
		},
	})
	cmd.AddCommand(newPathsSetCmd(app))

	return cmd
}

func pathsData(daily, standalone string) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"daily":      daily,
			"standalone": standalone,
		},
	}
}

func newPathsSetCmd(app *App) *cobra.Command {
	var daily string
	var standalone string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the daily and/or standalone directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if !f.Changed("daily") && !f.Changed("standalone") {
				return writeErr(cmd, errors.New("nothing to set (pass --daily and/or --standalone)"))
			}
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				curDaily, curStandalone, err := repo.Paths(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				if f.Changed("daily") {
					if curDaily, err = cleanDir(daily); err != nil {
						return writeErr(cmd, err)
					}
				}
				if f.Changed("standalone") {
					if curStandalone, err = cleanDir(standalone); err != nil {
						return writeErr(cmd, err)
					}
				}
				if err := repo.SavePaths(ctx, curDaily, curStandalone); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, pathsData(curDaily, curStandalone))
			})
		},
	}

	cmd.Flags().StringVar(&daily, "daily", "", "Daily-notes directory (empty clears it)")
	cmd.Flags().StringVar(&standalone, "standalone", "", "Standalone-notes directory (empty clears it)")
	return cmd
}

// cleanDir makes non-empty paths absolute so later runs from another cwd agree.
func cleanDir(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", nil
	}
	return filepath.Abs(p)
}

func newModeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "The mode used by the capture screen and by `add` without --mode",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the last selected mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				m, err := repo.Mode(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"mode": m}})
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "set <daily|standalone|endpoint>",
		Short:     "Select the mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.ModeDaily), string(model.ModeStandalone), string(model.ModeEndpoint)},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.ParseMode(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				if err := repo.SaveMode(ctx, m); err != nil {
					return writeErr(cmd, err)
				}
				out := map[string]any{"data": map[string]any{"mode": m}}
				if m == model.ModeEndpoint {
					if ep, err := repo.Endpoint(ctx); err == nil && ep.URL == "" {
						out["_hints"] = []string{
							capture.StatusNoEndpoint.Message() + ": quickcap endpoint set --url <url>",
						}
					}
				}
				return writeOut(cmd, app, out)
			})
		},
	})

	return cmd
}
