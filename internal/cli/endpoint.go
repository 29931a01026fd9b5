package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"quickcap/internal/capture"
	"quickcap/internal/endpoint"
	"quickcap/internal/model"
	"quickcap/internal/store"

	"github.com/spf13/cobra"
)

func newEndpointCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endpoint",
		Short: "HTTP endpoint settings used by endpoint mode",
	}

	cmd.AddCommand(newEndpointShowCmd(app))
	cmd.AddCommand(newEndpointSetCmd(app))
	cmd.AddCommand(newEndpointEditTextCmd(app))
	cmd.AddCommand(newEndpointHeadersCmd(app))

	return cmd
}

func endpointData(cfg model.EndpointConfig, reveal bool) map[string]any {
	shown := cfg.Redacted()
	if reveal {
		shown = cfg
	}
	valid := endpoint.Validate(cfg) == nil
	return map[string]any{
		"data": shown,
		"meta": map[string]any{"valid": valid},
	}
}

func newEndpointShowCmd(app *App) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the endpoint settings (secrets masked)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				cfg, err := repo.Endpoint(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, endpointData(cfg, reveal))
			})
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "Show tokens and passwords")
	return cmd
}

func newEndpointSetCmd(app *App) *cobra.Command {
	var next model.EndpointConfig
	var auth string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update endpoint settings; unset flags keep their stored values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				cfg, err := repo.Endpoint(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}

				f := cmd.Flags()
				if f.Changed("url") {
					cfg.URL = strings.TrimSpace(next.URL)
				}
				if f.Changed("auth") {
					cfg.AuthType = model.AuthType(strings.ToLower(strings.TrimSpace(auth)))
				}
				if f.Changed("token") {
					cfg.BearerToken = next.BearerToken
				}
				if f.Changed("username") {
					cfg.Username = next.Username
				}
				if f.Changed("password") {
					cfg.Password = next.Password
				}
				if f.Changed("headers") {
					cfg.ExtraHeaders = endpoint.FoldHeaders(next.ExtraHeaders)
				}

				return saveEndpoint(ctx, cmd, app, repo, cfg)
			})
		},
	}

	cmd.Flags().StringVar(&next.URL, "url", "", "Endpoint URL (absolute)")
	cmd.Flags().StringVar(&auth, "auth", "", "Auth type (none|bearer|basic)")
	cmd.Flags().StringVar(&next.BearerToken, "token", "", "Bearer token")
	cmd.Flags().StringVar(&next.Username, "username", "", "Basic auth username")
	cmd.Flags().StringVar(&next.Password, "password", "", "Basic auth password")
	cmd.Flags().StringVar(&next.ExtraHeaders, "headers", "", `Extra headers ("Name: value, Other: value")`)
	return cmd
}

func saveEndpoint(ctx context.Context, cmd *cobra.Command, app *App, repo *store.Repository, cfg model.EndpointConfig) error {
	if err := endpoint.Validate(cfg); err != nil {
		return writeErr(cmd, fmt.Errorf("%s: %w", capture.StatusEndpointSettingsInvalid.Message(), err))
	}
	if err := repo.SaveEndpoint(ctx, cfg); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, endpointData(cfg, false))
}

func newEndpointEditTextCmd(app *App) *cobra.Command {
	var printText bool

	cmd := &cobra.Command{
		Use:   "edit-text",
		Short: "Replace the endpoint settings from the labelled text form on stdin",
		Long: strings.TrimSpace(`
Reads the same "Label: value" text the capture screen edits (see --print) from
stdin, validates it and saves it. Typical use:

  quickcap endpoint edit-text --print > ep.txt
  $EDITOR ep.txt
  quickcap endpoint edit-text < ep.txt
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				if printText {
					cfg, err := repo.Endpoint(ctx)
					if err != nil {
						return writeErr(cmd, err)
					}
					_, err = io.WriteString(cmd.OutOrStdout(), endpoint.Format(cfg))
					return err
				}

				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, fmt.Errorf("read stdin: %w", err))
				}
				cfg, err := endpoint.Parse(string(b))
				if err != nil {
					return writeErr(cmd, fmt.Errorf("%s: %w", capture.StatusEndpointSettingsInvalid.Message(), err))
				}
				return saveEndpoint(ctx, cmd, app, repo, cfg)
			})
		},
	}

	cmd.Flags().BoolVar(&printText, "print", false, "Print the current settings as text instead of reading stdin")
	return cmd
}

func newEndpointHeadersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "headers",
		Short: "Show the extra headers as they will be sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withRepo(cmd, func(ctx context.Context, repo *store.Repository) error {
				cfg, err := repo.Endpoint(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				hs := endpoint.ParseExtraHeaders(cfg.ExtraHeaders)
				if hs == nil {
					hs = []endpoint.Header{}
				}
				return writeOut(cmd, app, map[string]any{"data": hs})
			})
		},
	}
}
