package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"quickcap/internal/capture"
	"quickcap/internal/logging"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case statusRevertMsg:
		m.session.RevertStatus(msg.seq)
		return m, nil

	case noteDoneMsg:
		if msg.seq == m.noteSeq {
			m.note = ""
		}
		return m, nil

	case deliveredMsg:
		o := m.session.Complete(context.Background(), msg.req, msg.err)
		return m, m.apply(o)

	case tea.KeyMsg:
		if m.pathsOpen {
			return m.updatePaths(msg)
		}
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// updateKey matches app shortcuts before the editor sees the key; the editor binds
// some of the same chords (ctrl+k, ctrl+b).
func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	dispatch := func(c capture.Command) (tea.Model, tea.Cmd) {
		cmd := m.apply(m.session.Dispatch(ctx, c))
		return m, cmd
	}

	// esc leaves a swapped-in view before it quits.
	if msg.Type == tea.KeyEsc {
		switch m.session.View() {
		case capture.ViewStashes:
			return dispatch(capture.ToggleStashView{})
		case capture.ViewEndpointSettings:
			return dispatch(capture.ToggleEndpointSettings{})
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Close()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return dispatch(capture.Submit{})
	case key.Matches(msg, m.keys.Post):
		return dispatch(capture.PostToEndpoint{})
	case key.Matches(msg, m.keys.Bold):
		return m.wrap(capture.WrapBold)
	case key.Matches(msg, m.keys.Italic):
		return m.wrap(capture.WrapItalic)
	case key.Matches(msg, m.keys.Link):
		return m.wrap(capture.WrapLink)
	case key.Matches(msg, m.keys.Todo):
		return m.wrap(capture.WrapTodo)
	case key.Matches(msg, m.keys.FontUp):
		return dispatch(capture.FontSizeUp{})
	case key.Matches(msg, m.keys.FontDown):
		return dispatch(capture.FontSizeDown{})
	case key.Matches(msg, m.keys.ToggleMode):
		return dispatch(capture.ToggleMode{})
	case key.Matches(msg, m.keys.SaveStash):
		return dispatch(capture.SaveStash{})
	case key.Matches(msg, m.keys.ApplyNewest):
		return dispatch(capture.ApplyStash{Index: 0})
	case key.Matches(msg, m.keys.ApplyIndex):
		if i, ok := stashIndex(msg.String()); ok {
			return dispatch(capture.ApplyStash{Index: i})
		}
		return m, nil
	case key.Matches(msg, m.keys.StashView):
		return dispatch(capture.ToggleStashView{})
	case key.Matches(msg, m.keys.Settings):
		return dispatch(capture.ToggleEndpointSettings{})
	case key.Matches(msg, m.keys.Paths):
		if m.session.View() != capture.ViewEdit {
			return m, nil
		}
		return m, m.openPaths()
	case key.Matches(msg, m.keys.Preview):
		m.preview = !m.preview
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if err := m.copy(m.editor.Value()); err != nil {
			m.log.Warn("clipboard copy failed", logging.Error(err))
			return m, m.showNote("Copy failed")
		}
		return m, m.showNote("Copied")
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.session.ReadOnly() && !isNavigationKey(msg) {
		return m, nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.session.Dispatch(ctx, capture.Edit{Text: after})
	}
	return m, cmd
}

func (m appModel) wrap(kind capture.WrapKind) (tea.Model, tea.Cmd) {
	pos := m.cursorOffset()
	o := m.session.Dispatch(context.Background(), capture.Wrap{Kind: kind, Start: pos, End: pos})
	return m, m.apply(o)
}

func isNavigationKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight,
		tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd:
		return true
	default:
		return false
	}
}

func (m *appModel) openPaths() tea.Cmd {
	m.pathsOpen = true
	m.pathInputs[0].SetValue(m.session.DailyPath())
	m.pathInputs[1].SetValue(m.session.StandalonePath())
	m.pathFocus = 0
	m.pathInputs[1].Blur()
	m.editor.Blur()
	return m.pathInputs[0].Focus()
}

func (m *appModel) closePaths() tea.Cmd {
	m.pathsOpen = false
	for i := range m.pathInputs {
		m.pathInputs[i].Blur()
	}
	return m.editor.Focus()
}

func (m appModel) updatePaths(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c", "ctrl+o":
		return m, m.closePaths()
	case "tab", "shift+tab", "up", "down":
		m.pathInputs[m.pathFocus].Blur()
		m.pathFocus = 1 - m.pathFocus
		return m, m.pathInputs[m.pathFocus].Focus()
	case "enter":
		ctx := context.Background()
		m.session.Dispatch(ctx, capture.SetDailyPath{Path: strings.TrimSpace(m.pathInputs[0].Value())})
		m.session.Dispatch(ctx, capture.SetStandalonePath{Path: strings.TrimSpace(m.pathInputs[1].Value())})
		return m, tea.Batch(m.closePaths(), m.showNote("Paths set"))
	}
	var cmd tea.Cmd
	m.pathInputs[m.pathFocus], cmd = m.pathInputs[m.pathFocus].Update(msg)
	return m, cmd
}
