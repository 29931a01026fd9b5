// Package capture holds the editing session state and turns user commands into status
// changes and delivery requests.
package capture

import (
	"context"
	"errors"
	"strings"

	"quickcap/internal/draft"
	"quickcap/internal/endpoint"
	"quickcap/internal/logging"
	"quickcap/internal/model"
	"quickcap/internal/sink"
	"quickcap/internal/stash"
	"quickcap/internal/store"
)

// View is the content currently swapped into the buffer.
type View int

const (
	ViewEdit View = iota
	ViewStashes
	ViewEndpointSettings
)

func (v View) String() string {
	switch v {
	case ViewStashes:
		return "stashes"
	case ViewEndpointSettings:
		return "endpoint-settings"
	default:
		return "edit"
	}
}

type Deps struct {
	Repo   *store.Repository
	Stash  *stash.Ring
	Draft  *draft.Autosaver
	Logger logging.Logger
}

// Session is the single-owner application state. It is not safe for concurrent use;
// the UI event loop owns it.
type Session struct {
	repo  *store.Repository
	stash *stash.Ring
	draft *draft.Autosaver
	log   logging.Logger

	buffer         string
	mode           model.Mode
	dailyPath      string
	standalonePath string
	endpoint       model.EndpointConfig
	fontSize       string

	view            View
	previousContent string
	readOnly        bool

	pending sink.Request

	status       Status
	statusDetail string
	statusSeq    int
}

// Outcome describes what a command did.
type Outcome struct {
	Status Status
	Detail string
	// Seq increases whenever a status is emitted; pass it to RevertStatus.
	Seq int
	// Emitted is true when this command set a status.
	Emitted bool
	// Request, when set, must be delivered and the result passed to Complete.
	Request sink.Request
	// Err is ErrNoPath, ErrNoEndpoint, *endpoint.ValidationError or *SinkError.
	Err error
	// BufferChanged means the caller should redisplay Buffer().
	BufferChanged bool
	// Selection is set by Wrap.
	Selection *Selection
}

// Open loads persisted state: paths, draft, font size, mode and endpoint settings.
func Open(ctx context.Context, d Deps) (*Session, error) {
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	if d.Stash == nil {
		d.Stash = stash.New(d.Repo)
	}
	s := &Session{
		repo:     d.Repo,
		stash:    d.Stash,
		draft:    d.Draft,
		log:      d.Logger,
		status:   StatusEdit,
		fontSize: DefaultFontSize,
	}

	var err error
	if s.dailyPath, s.standalonePath, err = d.Repo.Paths(ctx); err != nil {
		return nil, err
	}
	if text, ok, err := d.Repo.Draft(ctx); err != nil {
		return nil, err
	} else if ok {
		s.buffer = text
	}
	fs, err := d.Repo.FontSize(ctx)
	if err != nil {
		return nil, err
	}
	if fs != "" {
		s.fontSize = FontSizes[FontSizeIndex(fs)]
	}
	if s.mode, err = d.Repo.Mode(ctx); err != nil {
		return nil, err
	}
	if s.endpoint, err = d.Repo.Endpoint(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Buffer() string                 { return s.buffer }
func (s *Session) Mode() model.Mode               { return s.mode }
func (s *Session) DailyPath() string              { return s.dailyPath }
func (s *Session) StandalonePath() string         { return s.standalonePath }
func (s *Session) Endpoint() model.EndpointConfig { return s.endpoint }
func (s *Session) FontSize() string               { return s.fontSize }
func (s *Session) View() View                     { return s.view }
func (s *Session) ReadOnly() bool                 { return s.readOnly }
func (s *Session) Sending() bool                  { return s.pending != nil }
func (s *Session) Status() Status                 { return s.status }
func (s *Session) StatusDetail() string           { return s.statusDetail }
func (s *Session) StatusSeq() int                 { return s.statusSeq }

// StatusText is the message to display, including a validation reason if any.
func (s *Session) StatusText() string {
	if s.statusDetail != "" {
		return s.status.Message() + ": " + s.statusDetail
	}
	return s.status.Message()
}

// ActivePath is the destination directory for the selected file mode.
func (s *Session) ActivePath() string {
	if s.mode == model.ModeStandalone {
		return s.standalonePath
	}
	return s.dailyPath
}

func (s *Session) outcome() Outcome {
	return Outcome{Status: s.status, Detail: s.statusDetail, Seq: s.statusSeq}
}

func (s *Session) emit(st Status, detail string) Outcome {
	s.status = st
	s.statusDetail = detail
	s.statusSeq++
	o := s.outcome()
	o.Emitted = true
	return o
}

// RevertStatus returns a transient status to StatusEdit if nothing newer was emitted
// since seq.
func (s *Session) RevertStatus(seq int) bool {
	if seq != s.statusSeq || !s.status.Transient() {
		return false
	}
	s.status = StatusEdit
	s.statusDetail = ""
	return true
}

// Dispatch applies cmd to the session.
func (s *Session) Dispatch(ctx context.Context, cmd Command) Outcome {
	switch c := cmd.(type) {
	case Edit:
		return s.edit(c.Text)
	case Submit:
		return s.submit(s.mode)
	case PostToEndpoint:
		return s.submit(model.ModeEndpoint)
	case SaveStash:
		return s.saveStash(ctx)
	case ApplyStash:
		return s.applyStash(ctx, c.Index)
	case ToggleStashView:
		return s.toggleStashView(ctx)
	case ToggleEndpointSettings:
		return s.toggleEndpointSettings(ctx)
	case ToggleMode:
		next := model.ModeDaily
		if s.mode == model.ModeDaily {
			next = model.ModeStandalone
		}
		return s.setMode(ctx, next)
	case SetMode:
		return s.setMode(ctx, c.Mode)
	case SetDailyPath:
		s.dailyPath = strings.TrimSpace(c.Path)
		return s.outcome()
	case SetStandalonePath:
		s.standalonePath = strings.TrimSpace(c.Path)
		return s.outcome()
	case FontSizeUp:
		return s.stepFontSize(ctx, 1)
	case FontSizeDown:
		return s.stepFontSize(ctx, -1)
	case Wrap:
		return s.wrap(c)
	default:
		return s.outcome()
	}
}

func (s *Session) edit(text string) Outcome {
	if s.readOnly {
		return s.outcome()
	}
	s.buffer = text
	if s.view == ViewEdit {
		s.draft.Edit(text)
	}
	return s.outcome()
}

func (s *Session) submit(mode model.Mode) Outcome {
	if s.view != ViewEdit {
		return s.outcome()
	}
	if s.pending != nil {
		return s.outcome()
	}

	req, err := NewRequest(mode, s.buffer, s.dailyPath, s.standalonePath, s.endpoint)
	switch {
	case errors.Is(err, ErrNoEndpoint):
		o := s.emit(StatusNoEndpoint, "")
		o.Err = err
		return o
	case errors.Is(err, ErrNoPath):
		o := s.emit(StatusNoPath, "")
		o.Err = err
		return o
	case err != nil:
		// Empty content is a silent no-op.
		return s.outcome()
	}

	s.pending = req
	o := s.emit(StatusSending, "")
	o.Request = req
	return o
}

// Complete records the result of delivering req. Results for anything other than
// the in-flight request are ignored.
func (s *Session) Complete(ctx context.Context, req sink.Request, err error) Outcome {
	if req == nil || req != s.pending {
		return s.outcome()
	}
	s.pending = nil

	if err != nil {
		s.log.Warn("submission failed", logging.String("kind", requestKind(req)), logging.Error(err))
		o := s.emit(StatusError, "")
		o.Err = &SinkError{Err: err}
		return o
	}

	// The edit buffer may be swapped out while the request was in flight.
	if s.view == ViewEdit {
		s.buffer = ""
	} else {
		s.previousContent = ""
	}
	s.draft.Cancel()
	if err := s.repo.ClearDraft(ctx); err != nil {
		s.log.Warn("draft clear failed", logging.Error(err))
	}
	if _, ok := req.(*sink.FileRequest); ok {
		if err := s.repo.SavePaths(ctx, s.dailyPath, s.standalonePath); err != nil {
			s.log.Warn("path save failed", logging.Error(err))
		}
	}
	s.log.Info("submitted", logging.String("kind", requestKind(req)))
	o := s.emit(StatusSuccess, "")
	o.BufferChanged = s.view == ViewEdit
	return o
}

func requestKind(req sink.Request) string {
	switch r := req.(type) {
	case *sink.FileRequest:
		return string(r.Mode)
	case *sink.EndpointRequest:
		return string(model.ModeEndpoint)
	default:
		return "unknown"
	}
}

func (s *Session) saveStash(ctx context.Context) Outcome {
	if s.view != ViewEdit {
		return s.outcome()
	}
	content := strings.TrimSpace(s.buffer)
	if content == "" {
		return s.outcome()
	}
	if _, err := s.stash.Save(ctx, content); err != nil {
		s.log.Warn("stash save failed", logging.Error(err))
		o := s.emit(StatusError, "")
		o.Err = err
		return o
	}
	s.buffer = ""
	s.draft.Cancel()
	if err := s.repo.ClearDraft(ctx); err != nil {
		s.log.Warn("draft clear failed", logging.Error(err))
	}
	o := s.emit(StatusStashSaved, "")
	o.BufferChanged = true
	return o
}

func (s *Session) applyStash(ctx context.Context, index int) Outcome {
	if s.view == ViewEndpointSettings {
		return s.outcome()
	}
	content, ok, err := s.stash.Apply(ctx, index)
	if err != nil {
		s.log.Warn("stash read failed", logging.Error(err))
		return s.outcome()
	}
	if !ok {
		return s.outcome()
	}
	if s.view == ViewStashes {
		s.leaveStashView()
	}
	s.buffer = content
	s.draft.Edit(content)
	o := s.emit(StatusStashApplied, "")
	o.BufferChanged = true
	return o
}

func (s *Session) toggleStashView(ctx context.Context) Outcome {
	switch s.view {
	case ViewEdit:
		xs, err := s.stash.List(ctx)
		if err != nil {
			s.log.Warn("stash list failed", logging.Error(err))
			return s.outcome()
		}
		s.previousContent = s.buffer
		s.buffer = RenderStashList(xs)
		s.readOnly = true
		s.view = ViewStashes
		o := s.outcome()
		o.BufferChanged = true
		return o
	case ViewStashes:
		s.leaveStashView()
		o := s.emit(StatusEdit, "")
		o.BufferChanged = true
		return o
	default:
		return s.outcome()
	}
}

func (s *Session) leaveStashView() {
	s.buffer = s.previousContent
	s.previousContent = ""
	s.readOnly = false
	s.view = ViewEdit
}

func (s *Session) toggleEndpointSettings(ctx context.Context) Outcome {
	switch s.view {
	case ViewEdit:
		s.previousContent = s.buffer
		s.buffer = endpoint.Format(s.endpoint)
		s.view = ViewEndpointSettings
		o := s.outcome()
		o.BufferChanged = true
		return o
	case ViewEndpointSettings:
		cfg, err := endpoint.Parse(s.buffer)
		if err != nil {
			reason := err.Error()
			var verr *endpoint.ValidationError
			if errors.As(err, &verr) {
				reason = verr.Reason
			}
			o := s.emit(StatusEndpointSettingsInvalid, reason)
			o.Err = err
			return o
		}
		if err := s.repo.SaveEndpoint(ctx, cfg); err != nil {
			s.log.Warn("endpoint settings save failed", logging.Error(err))
			o := s.emit(StatusError, "")
			o.Err = err
			return o
		}
		s.endpoint = cfg
		s.buffer = s.previousContent
		s.previousContent = ""
		s.view = ViewEdit
		o := s.emit(StatusEndpointSettingsSaved, "")
		o.BufferChanged = true
		return o
	default:
		return s.outcome()
	}
}

func (s *Session) setMode(ctx context.Context, m model.Mode) Outcome {
	if !m.Valid() || m == s.mode {
		return s.outcome()
	}
	s.mode = m
	if err := s.repo.SaveMode(ctx, m); err != nil {
		s.log.Warn("mode save failed", logging.Error(err))
	}
	return s.outcome()
}

func (s *Session) stepFontSize(ctx context.Context, delta int) Outcome {
	next := StepFontSize(s.fontSize, delta)
	if next == s.fontSize {
		return s.outcome()
	}
	s.fontSize = next
	if err := s.repo.SaveFontSize(ctx, fontSizeKey(next)); err != nil {
		s.log.Warn("font size save failed", logging.Error(err))
	}
	return s.outcome()
}

func (s *Session) wrap(c Wrap) Outcome {
	if s.view != ViewEdit {
		return s.outcome()
	}
	text, sel := WrapSelection(s.buffer, c.Start, c.End, c.Kind)
	o := s.edit(text)
	o.BufferChanged = true
	o.Selection = &sel
	return o
}

// Close writes any pending draft.
func (s *Session) Close() {
	s.draft.Flush()
}
