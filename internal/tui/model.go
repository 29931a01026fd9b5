package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quickcap/internal/capture"
	"quickcap/internal/logging"
	"quickcap/internal/sink"
	"quickcap/internal/store"
)

// statusRevertMsg returns a transient status to "Edit" if seq is still current.
type statusRevertMsg struct{ seq int }

// noteDoneMsg clears the minibuffer note.
type noteDoneMsg struct{ seq int }

// deliveredMsg carries the result of a sink delivery.
type deliveredMsg struct {
	req sink.Request
	err error
}

type Options struct {
	Session      *capture.Session
	Sink         sink.Sink
	StatusRevert time.Duration
	Logger       logging.Logger
	// Clipboard overrides the system clipboard (tests).
	Clipboard func(string) error
}

type appModel struct {
	session *capture.Session
	sink    sink.Sink
	log     logging.Logger
	revert  time.Duration
	copy    func(string) error

	width  int
	height int

	editor textarea.Model
	keys   keyMap
	help   help.Model

	pathsOpen  bool
	pathInputs [2]textinput.Model
	pathFocus  int

	preview bool

	note    string
	noteSeq int

	quitting bool
}

func newAppModel(o Options) appModel {
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	if o.StatusRevert <= 0 {
		o.StatusRevert = store.DefaultStatusRevert
	}
	if o.Clipboard == nil {
		o.Clipboard = copyToClipboard
	}

	ed := textarea.New()
	// bubbles v0.20 defaults to a small CharLimit and MaxHeight.
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.ShowLineNumbers = false
	ed.Prompt = ""
	ed.Placeholder = "What's on your mind?"
	ed.FocusedStyle.CursorLine = ed.BlurredStyle.CursorLine
	ed.SetValue(o.Session.Buffer())
	ed.Focus()

	m := appModel{
		session: o.Session,
		sink:    o.Sink,
		log:     o.Logger,
		revert:  o.StatusRevert,
		copy:    o.Clipboard,
		editor:  ed,
		keys:    defaultKeyMap(),
		help:    help.New(),
		width:   80,
		height:  24,
	}
	for i, label := range []string{"Daily path", "Standalone path"} {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = label
		ti.CharLimit = 1024
		m.pathInputs[i] = ti
	}
	m.layout()
	return m
}

func (m appModel) Init() tea.Cmd {
	return textarea.Blink
}

// deliver runs the sink off the UI goroutine.
func (m appModel) deliver(req sink.Request) tea.Cmd {
	s := m.sink
	return func() tea.Msg {
		if s == nil {
			return deliveredMsg{req: req, err: sink.ErrUnsupportedRequest}
		}
		return deliveredMsg{req: req, err: s.Deliver(context.Background(), req)}
	}
}

// apply reflects a session outcome in the widgets and returns follow-up commands.
func (m *appModel) apply(o capture.Outcome) tea.Cmd {
	var cmds []tea.Cmd
	if o.BufferChanged {
		m.editor.SetValue(m.session.Buffer())
		if o.Selection != nil {
			m.moveCursorTo(o.Selection.Start)
		}
	}
	if o.Emitted && o.Status.Transient() {
		seq := o.Seq
		cmds = append(cmds, tea.Tick(m.revert, func(time.Time) tea.Msg { return statusRevertMsg{seq: seq} }))
	}
	if o.Request != nil {
		cmds = append(cmds, m.deliver(o.Request))
	}
	m.layout()
	return tea.Batch(cmds...)
}

// moveCursorTo places the cursor at rune offset pos. SetValue leaves the cursor at
// the end, so it steps left from there.
func (m *appModel) moveCursorTo(pos int) {
	n := len([]rune(m.editor.Value())) - pos
	for i := 0; i < n; i++ {
		m.editor, _ = m.editor.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
}

// cursorOffset is the rune offset of the editor cursor in Value().
func (m appModel) cursorOffset() int {
	lines := splitLines(m.editor.Value())
	row := m.editor.Line()
	off := 0
	for i := 0; i < row && i < len(lines); i++ {
		off += len([]rune(lines[i])) + 1
	}
	li := m.editor.LineInfo()
	return off + li.StartColumn + li.ColumnOffset
}

func (m *appModel) showNote(s string) tea.Cmd {
	m.note = s
	m.noteSeq++
	seq := m.noteSeq
	return tea.Tick(m.revert, func(time.Time) tea.Msg { return noteDoneMsg{seq: seq} })
}

// editorHeight maps the font size step onto the share of the screen the editor uses.
func (m appModel) editorHeight() int {
	avail := m.height - 6
	if m.preview {
		avail /= 2
	}
	idx := capture.FontSizeIndex(m.session.FontSize())
	h := avail * (idx + 4) / 10
	if h < 3 {
		h = 3
	}
	return h
}

func (m *appModel) layout() {
	w := m.width - 2
	if w < 10 {
		w = 10
	}
	m.editor.SetWidth(w)
	m.editor.SetHeight(m.editorHeight())
	m.help.Width = m.width
	for i := range m.pathInputs {
		m.pathInputs[i].Width = modalBodyWidth(m.width) - 2
	}
}
