package store

import (
	"context"
	"testing"
	"time"

	"quickcap/internal/model"
)

func TestRepository_DraftBlankRemovesKey(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	r := NewRepository(kv)

	if err := r.SaveDraft(ctx, "half a thought"); err != nil {
		t.Fatalf("save draft: %v", err)
	}
	if v, ok, _ := r.Draft(ctx); !ok || v != "half a thought" {
		t.Fatalf("draft = %q ok=%v", v, ok)
	}

	if err := r.SaveDraft(ctx, "  \n\t "); err != nil {
		t.Fatalf("save blank draft: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, KeyDraft); ok {
		t.Fatalf("blank draft should remove %q", KeyDraft)
	}
}

func TestRepository_StashesRoundTripAndCorruption(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	r := NewRepository(kv)

	xs, err := r.Stashes(ctx)
	if err != nil || len(xs) != 0 || xs == nil {
		t.Fatalf("empty stashes: %#v err=%v", xs, err)
	}

	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	want := []model.StashEntry{model.NewStashEntry("b", now), model.NewStashEntry("a", now.Add(-time.Minute))}
	if err := r.SaveStashes(ctx, want); err != nil {
		t.Fatalf("save stashes: %v", err)
	}
	raw, _, _ := kv.Get(ctx, KeyStashes)
	if raw != `[{"content":"b","timestamp":"2026-10-18T09:30:00.000Z"},{"content":"a","timestamp":"2026-10-18T09:29:00.000Z"}]` {
		t.Fatalf("unexpected stored json: %s", raw)
	}
	got, err := r.Stashes(ctx)
	if err != nil || len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("round trip: %#v err=%v", got, err)
	}

	_ = kv.Set(ctx, KeyStashes, "{not json")
	got, err = r.Stashes(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("corrupted stashes should read empty: %#v err=%v", got, err)
	}
}

func TestRepository_EndpointFieldByField(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	r := NewRepository(kv)

	cfg, err := r.Endpoint(ctx)
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg != model.DefaultEndpointConfig() {
		t.Fatalf("defaults = %#v", cfg)
	}

	in := model.EndpointConfig{
		URL:          "https://example.com/hook",
		AuthType:     model.AuthBasic,
		Username:     "me",
		Password:     "secret",
		ExtraHeaders: "X-A: 1, X-B: 2",
	}
	if err := r.SaveEndpoint(ctx, in); err != nil {
		t.Fatalf("save endpoint: %v", err)
	}
	for key, want := range map[string]string{
		KeyEndpointURL:          "https://example.com/hook",
		KeyEndpointAuthType:     "basic",
		KeyEndpointBearerToken:  "",
		KeyEndpointUsername:     "me",
		KeyEndpointPassword:     "secret",
		KeyEndpointExtraHeaders: "X-A: 1, X-B: 2",
	} {
		if got, ok, _ := kv.Get(ctx, key); !ok || got != want {
			t.Fatalf("%s = %q (ok=%v), want %q", key, got, ok, want)
		}
	}
	out, err := r.Endpoint(ctx)
	if err != nil || out != in {
		t.Fatalf("reload: %#v err=%v", out, err)
	}
}

func TestRepository_ModeDefaultsToDaily(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	r := NewRepository(kv)

	if m, err := r.Mode(ctx); err != nil || m != model.ModeDaily {
		t.Fatalf("default mode = %q err=%v", m, err)
	}
	_ = kv.Set(ctx, KeyMode, "bogus")
	if m, _ := r.Mode(ctx); m != model.ModeDaily {
		t.Fatalf("invalid stored mode should fall back to daily, got %q", m)
	}
	if err := r.SaveMode(ctx, model.ModeEndpoint); err != nil {
		t.Fatalf("save mode: %v", err)
	}
	if m, _ := r.Mode(ctx); m != model.ModeEndpoint {
		t.Fatalf("mode = %q", m)
	}
}
