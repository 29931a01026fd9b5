package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"quickcap/internal/model"
)

// Store keys. They use the browser localStorage names so exported state can be
// imported by copying values verbatim.
const (
	KeyDailyPath            = "dailyPath"
	KeyStandalonePath       = "standalonePath"
	KeyDraft                = "draftThought"
	KeyFontSize             = "fontSize"
	KeyStashes              = "stashes"
	KeyMode                 = "mode"
	KeyEndpointURL          = "endpointUrl"
	KeyEndpointAuthType     = "endpointAuthType"
	KeyEndpointBearerToken  = "endpointBearerToken"
	KeyEndpointUsername     = "endpointUsername"
	KeyEndpointPassword     = "endpointPassword"
	KeyEndpointExtraHeaders = "endpointExtraHeaders"
)

// Codec converts a typed value to and from its stored string form.
type Codec[T any] interface {
	Encode(v T) (string, error)
	Decode(s string) (T, error)
}

type stringCodec struct{}

func (stringCodec) Encode(v string) (string, error) { return v, nil }
func (stringCodec) Decode(s string) (string, error) { return s, nil }

type jsonCodec[T any] struct{}

func (jsonCodec[T]) Encode(v T) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (jsonCodec[T]) Decode(s string) (T, error) {
	var v T
	err := json.Unmarshal([]byte(s), &v)
	return v, err
}

// Field binds a key to a codec.
type Field[T any] struct {
	Key   string
	Codec Codec[T]
}

// Load returns the decoded value and whether the key was present.
func (f Field[T]) Load(ctx context.Context, kv KV) (T, bool, error) {
	var zero T
	raw, ok, err := kv.Get(ctx, f.Key)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := f.Codec.Decode(raw)
	if err != nil {
		return zero, true, err
	}
	return v, true, nil
}

func (f Field[T]) Save(ctx context.Context, kv KV, v T) error {
	raw, err := f.Codec.Encode(v)
	if err != nil {
		return err
	}
	return kv.Set(ctx, f.Key, raw)
}

func (f Field[T]) Clear(ctx context.Context, kv KV) error {
	return kv.Remove(ctx, f.Key)
}

func stringField(key string) Field[string] {
	return Field[string]{Key: key, Codec: stringCodec{}}
}

var (
	DailyPathField      = stringField(KeyDailyPath)
	StandalonePathField = stringField(KeyStandalonePath)
	DraftField          = stringField(KeyDraft)
	FontSizeField       = stringField(KeyFontSize)
	ModeField           = stringField(KeyMode)
	StashesField        = Field[[]model.StashEntry]{Key: KeyStashes, Codec: jsonCodec[[]model.StashEntry]{}}
)

// Repository is the typed view over the KV store used by the capture session, the
// stash ring and the CLI.
type Repository struct {
	kv KV
}

func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv}
}

func (r *Repository) KV() KV { return r.kv }

func (r *Repository) loadString(ctx context.Context, f Field[string]) (string, error) {
	v, _, err := f.Load(ctx, r.kv)
	return v, err
}

func (r *Repository) Paths(ctx context.Context) (daily, standalone string, err error) {
	if daily, err = r.loadString(ctx, DailyPathField); err != nil {
		return "", "", err
	}
	if standalone, err = r.loadString(ctx, StandalonePathField); err != nil {
		return "", "", err
	}
	return daily, standalone, nil
}

func (r *Repository) SavePaths(ctx context.Context, daily, standalone string) error {
	if err := DailyPathField.Save(ctx, r.kv, daily); err != nil {
		return err
	}
	return StandalonePathField.Save(ctx, r.kv, standalone)
}

func (r *Repository) Draft(ctx context.Context) (string, bool, error) {
	return DraftField.Load(ctx, r.kv)
}

// SaveDraft stores text, or removes the draft when text is blank so that "is there a
// draft" stays a presence check.
func (r *Repository) SaveDraft(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return DraftField.Clear(ctx, r.kv)
	}
	return DraftField.Save(ctx, r.kv, text)
}

func (r *Repository) ClearDraft(ctx context.Context) error {
	return DraftField.Clear(ctx, r.kv)
}

func (r *Repository) FontSize(ctx context.Context) (string, error) {
	return r.loadString(ctx, FontSizeField)
}

func (r *Repository) SaveFontSize(ctx context.Context, size string) error {
	return FontSizeField.Save(ctx, r.kv, size)
}

// Mode returns the last selected mode, defaulting to daily.
func (r *Repository) Mode(ctx context.Context) (model.Mode, error) {
	raw, err := r.loadString(ctx, ModeField)
	if err != nil {
		return model.ModeDaily, err
	}
	m, err := model.ParseMode(raw)
	if err != nil {
		return model.ModeDaily, nil
	}
	return m, nil
}

func (r *Repository) SaveMode(ctx context.Context, m model.Mode) error {
	return ModeField.Save(ctx, r.kv, string(m))
}

// Stashes returns the stash list, newest first. A corrupted value reads as empty.
func (r *Repository) Stashes(ctx context.Context) ([]model.StashEntry, error) {
	xs, _, err := StashesField.Load(ctx, r.kv)
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return []model.StashEntry{}, nil
		}
		return nil, err
	}
	if xs == nil {
		xs = []model.StashEntry{}
	}
	return xs, nil
}

// SaveStashes writes the whole list in one store write.
func (r *Repository) SaveStashes(ctx context.Context, xs []model.StashEntry) error {
	if xs == nil {
		xs = []model.StashEntry{}
	}
	return StashesField.Save(ctx, r.kv, xs)
}

func (r *Repository) ClearStashes(ctx context.Context) error {
	return StashesField.Clear(ctx, r.kv)
}

var endpointFields = []struct {
	field Field[string]
	get   func(*model.EndpointConfig) *string
}{
	{stringField(KeyEndpointURL), func(c *model.EndpointConfig) *string { return &c.URL }},
	{stringField(KeyEndpointBearerToken), func(c *model.EndpointConfig) *string { return &c.BearerToken }},
	{stringField(KeyEndpointUsername), func(c *model.EndpointConfig) *string { return &c.Username }},
	{stringField(KeyEndpointPassword), func(c *model.EndpointConfig) *string { return &c.Password }},
	{stringField(KeyEndpointExtraHeaders), func(c *model.EndpointConfig) *string { return &c.ExtraHeaders }},
}

var endpointAuthTypeField = stringField(KeyEndpointAuthType)

// Endpoint loads the endpoint configuration field by field. Missing keys keep their
// defaults (empty, auth none).
func (r *Repository) Endpoint(ctx context.Context) (model.EndpointConfig, error) {
	cfg := model.DefaultEndpointConfig()
	for _, ef := range endpointFields {
		v, err := r.loadString(ctx, ef.field)
		if err != nil {
			return cfg, err
		}
		*ef.get(&cfg) = v
	}
	at, err := r.loadString(ctx, endpointAuthTypeField)
	if err != nil {
		return cfg, err
	}
	if a := model.AuthType(strings.ToLower(strings.TrimSpace(at))); a.Valid() {
		cfg.AuthType = a
	}
	return cfg, nil
}

// SaveEndpoint persists every field under its own key.
func (r *Repository) SaveEndpoint(ctx context.Context, cfg model.EndpointConfig) error {
	for _, ef := range endpointFields {
		if err := ef.field.Save(ctx, r.kv, *ef.get(&cfg)); err != nil {
			return err
		}
	}
	at := cfg.AuthType
	if at == "" {
		at = model.AuthNone
	}
	return endpointAuthTypeField.Save(ctx, r.kv, string(at))
}
