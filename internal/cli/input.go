package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var errMissingText = errors.New("missing text (pass - to read stdin)")

// readText joins args, or reads stdin when the only arg is "-".
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(b), "\r\n"), nil
	}
	if len(args) == 0 {
		return "", errMissingText
	}
	return strings.Join(args, " "), nil
}

const renderWidth = 80

// renderFlags are shared by the commands that can print markdown through glamour.
type renderFlags struct {
	render bool
	style  string
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.render, "render", false, "Print the content rendered as markdown instead of structured output")
	cmd.Flags().StringVar(&f.style, "style", envOr("QUICKCAP_MD_STYLE", "dark"), "glamour style for --render (dark|light|notty|ascii|dracula|pink|tokyo-night)")
}

// write prints md rendered, or falls back to structured output.
func (f *renderFlags) write(cmd *cobra.Command, app *App, md string, v any) error {
	if !f.render {
		return writeOut(cmd, app, v)
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(f.style),
		glamour.WithWordWrap(renderWidth),
	)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("markdown renderer: %w", err))
	}
	out, err := r.Render(md)
	if err != nil {
		return writeErr(cmd, err)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}
