package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quickcap/internal/capture"
	"quickcap/internal/model"
	"quickcap/internal/stash"
	"quickcap/internal/store"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

func newStashCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stash",
		Short: fmt.Sprintf("Saved snippets (newest first, at most %d)", stash.MaxStashes),
	}

	cmd.AddCommand(newStashListCmd(app))
	cmd.AddCommand(newStashSaveCmd(app))
	cmd.AddCommand(newStashApplyCmd(app))
	cmd.AddCommand(newStashShowCmd(app))
	cmd.AddCommand(newStashCopyCmd(app))
	cmd.AddCommand(newStashClearCmd(app))

	return cmd
}

type stashView struct {
	Index     int    `json:"index"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func stashViews(xs []model.StashEntry) []stashView {
	out := make([]stashView, 0, len(xs))
	for i, e := range xs {
		out = append(out, stashView{Index: i + 1, Content: e.Content, Timestamp: e.Timestamp})
	}
	return out
}

// parseStashIndex reads a 1-based index as shown by `stash list`.
func parseStashIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > stash.MaxStashes {
		return 0, fmt.Errorf("invalid stash index %q (want 1..%d)", s, stash.MaxStashes)
	}
	return n - 1, nil
}

func errNoStash(i int) error {
	return fmt.Errorf("no stash at index %d", i+1)
}

func newStashListCmd(app *App) *cobra.Command {
	var text bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stashes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				xs, err := stash.New(repo).List(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				if text {
					_, err := io.WriteString(cmd.OutOrStdout(), capture.RenderStashList(xs))
					return err
				}
				return writeOut(cmd, app, map[string]any{
					"data": stashViews(xs),
					"meta": map[string]any{"count": len(xs), "max": stash.MaxStashes},
				})
			})
		},
	}

	cmd.Flags().BoolVar(&text, "text", false, "Print the list as the capture screen shows it")
	return cmd
}

func newStashSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save [text...|-]",
		Short: "Save a snippet as the newest stash (the oldest is dropped past the limit)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return writeErr(cmd, err)
			}
			content := strings.TrimSpace(text)
			if content == "" {
				return writeErr(cmd, errors.New("nothing to stash"))
			}
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				e, err := stash.New(repo).Save(ctx, content)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{
					"data":   stashView{Index: 1, Content: e.Content, Timestamp: e.Timestamp},
					"_hints": []string{"quickcap stash list"},
				})
			})
		},
	}
}

func newStashApplyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <index>",
		Short: "Replace the draft with a stash (the capture screen opens with it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseStashIndex(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				content, ok, err := stash.New(repo).Apply(ctx, i)
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeErr(cmd, errNoStash(i))
				}
				if err := repo.SaveDraft(ctx, content); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{
					"data": map[string]any{
						"index":   i + 1,
						"content": content,
						"status":  capture.StatusStashApplied.Message(),
					},
				})
			})
		},
	}
}

// loadStash returns entry i or an error naming the missing index.
func loadStash(ctx context.Context, repo *store.Repository, i int) (model.StashEntry, error) {
	xs, err := stash.New(repo).List(ctx)
	if err != nil {
		return model.StashEntry{}, err
	}
	if i >= len(xs) {
		return model.StashEntry{}, errNoStash(i)
	}
	return xs[i], nil
}

func newStashShowCmd(app *App) *cobra.Command {
	var rf renderFlags

	cmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Show one stash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseStashIndex(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				e, err := loadStash(ctx, repo, i)
				if err != nil {
					return writeErr(cmd, err)
				}
				return rf.write(cmd, app, e.Content, map[string]any{
					"data": stashView{Index: i + 1, Content: e.Content, Timestamp: e.Timestamp},
				})
			})
		},
	}

	rf.bind(cmd)
	return cmd
}

func newStashCopyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <index>",
		Short: "Copy one stash to the system clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseStashIndex(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				e, err := loadStash(ctx, repo, i)
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := writeClipboard(e.Content); err != nil {
					return writeErr(cmd, fmt.Errorf("clipboard: %w", err))
				}
				return writeOut(cmd, app, map[string]any{
					"data": map[string]any{"index": i + 1, "copied": true},
				})
			})
		},
	}
}

func newStashClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every stash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				if err := stash.New(repo).Clear(ctx); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"cleared": true}})
			})
		},
	}
}
