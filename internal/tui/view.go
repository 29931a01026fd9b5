package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"quickcap/internal/capture"
	"quickcap/internal/model"
)

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

func modalBodyWidth(termW int) int {
	w := termW - 12
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderModalBox(termW int, title, body string) string {
	bodyW := modalBodyWidth(termW)
	head := lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(colorControlBg).Foreground(colorSurfaceFg).Width(bodyW).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Render(head + "\n\n" + body)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	if m.pathsOpen {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderPaths())
	}

	parts := []string{m.renderHeader()}
	parts = append(parts, styleEditorBox(!m.session.ReadOnly()).Render(m.editor.View()))
	if m.preview {
		parts = append(parts, m.renderPreview())
	}
	parts = append(parts, m.renderFooter())
	return strings.Join(parts, "\n")
}

func (m appModel) destination() string {
	s := m.session
	switch s.Mode() {
	case model.ModeEndpoint:
		if u := s.Endpoint().URL; u != "" {
			return u
		}
		return "no endpoint"
	default:
		if p := s.ActivePath(); p != "" {
			return p
		}
		return "no path (ctrl+o)"
	}
}

func (m appModel) renderHeader() string {
	s := m.session
	left := styleHeader().Render("quickcap") + " " + styleBadge().Render(string(s.Mode()))
	switch s.View() {
	case capture.ViewStashes:
		left += " " + styleBadge().Render("stashes")
	case capture.ViewEndpointSettings:
		left += " " + styleBadge().Render("endpoint settings")
	}
	left += " " + styleMuted().Render(m.destination())

	status := styleStatus(s.Status().Tone()).Render("● " + s.StatusText())
	leftW := m.width - lipgloss.Width(status) - 1
	left = fitLine(left, leftW)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + status
}

func (m appModel) renderPreview() string {
	w := m.width - 2
	out := renderMarkdown(m.editor.Value(), w)
	if out == "" {
		out = styleMuted().Render("Nothing to preview")
	}
	lines := splitLines(out)
	if limit := m.editorHeight(); len(lines) > limit {
		lines = lines[:limit]
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderFooter() string {
	line := m.help.View(m.keys)
	if m.note != "" {
		line = styleMuted().Render(m.note) + "  " + line
	}
	return fitLine(line, m.width)
}

func (m appModel) renderPaths() string {
	bodyW := modalBodyWidth(m.width)
	labels := []string{"Daily path", "Standalone path"}
	var b strings.Builder
	for i, in := range m.pathInputs {
		label := labels[i]
		if i == m.pathFocus {
			label = lipgloss.NewStyle().Bold(true).Render(label)
		}
		b.WriteString(label + "\n")
		b.WriteString(renderPathField(bodyW, in.View()) + "\n\n")
	}
	b.WriteString(styleMuted().Render("tab: switch   enter: save   esc: cancel") + "\x1b[0m")
	return renderModalBox(m.width, "Destination paths", b.String())
}

// renderPathField draws a path input as one row of exactly bodyW cells on the input
// background. Overlong views are cut so the modal border stays straight.
func renderPathField(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}
	inputView = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(inputView)
	inputView = xansi.Truncate(inputView, bodyW-2, "")
	return lipgloss.NewStyle().
		Background(colorInputBg).
		Padding(0, 1).
		Width(bodyW).
		Render(inputView)
}

// fitLine truncates s to w cells with an ellipsis.
func fitLine(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	return xansi.Truncate(s, w, "…")
}
