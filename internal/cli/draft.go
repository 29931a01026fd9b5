package cli

import (
	"context"

	"quickcap/internal/store"

	"github.com/spf13/cobra"
)

func newDraftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "The autosaved draft the capture screen restores on start",
	}

	cmd.AddCommand(newDraftShowCmd(app))
	cmd.AddCommand(newDraftClearCmd(app))

	return cmd
}

func newDraftShowCmd(app *App) *cobra.Command {
	var rf renderFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				text, ok, err := repo.Draft(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				return rf.write(cmd, app, text, map[string]any{
					"data": map[string]any{"present": ok, "content": text},
				})
			})
		},
	}

	rf.bind(cmd)
	return cmd
}

func newDraftClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard the saved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				if err := repo.ClearDraft(ctx); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"cleared": true}})
			})
		},
	}
}
