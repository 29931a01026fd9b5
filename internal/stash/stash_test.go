package stash

import (
	"context"
	"fmt"
	"testing"
	"time"

	"quickcap/internal/store"
)

func newRing(t *testing.T) (*Ring, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	base := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	n := 0
	r := New(store.NewRepository(kv)).WithClock(func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	})
	return r, kv
}

func TestSave_NewestFirstAndBounded(t *testing.T) {
	ctx := context.Background()
	r, _ := newRing(t)

	for i := 1; i <= 15; i++ {
		content := fmt.Sprintf("note %d", i)
		if _, err := r.Save(ctx, content); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		xs, err := r.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(xs) > MaxStashes {
			t.Fatalf("after %d saves: len=%d", i, len(xs))
		}
		if xs[0].Content != content {
			t.Fatalf("after %d saves: head=%q", i, xs[0].Content)
		}
	}
}

func TestSave_EleventhEvictsOldest(t *testing.T) {
	ctx := context.Background()
	r, kv := newRing(t)

	for i := 1; i <= MaxStashes; i++ {
		_, _ = r.Save(ctx, fmt.Sprintf("n%d", i))
	}
	before, _ := r.List(ctx)
	writes := kv.Writes()

	if _, err := r.Save(ctx, "n11"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if kv.Writes()-writes != 1 {
		t.Fatalf("expected a single store write, got %d", kv.Writes()-writes)
	}
	after, _ := r.List(ctx)
	if len(after) != MaxStashes {
		t.Fatalf("len=%d", len(after))
	}
	if after[0].Content != "n11" {
		t.Fatalf("head=%q", after[0].Content)
	}
	for i := 1; i < MaxStashes; i++ {
		if after[i] != before[i-1] {
			t.Fatalf("entry %d = %#v, want %#v", i, after[i], before[i-1])
		}
	}
	for _, e := range after {
		if e.Content == "n1" {
			t.Fatalf("oldest entry should be evicted")
		}
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	r, kv := newRing(t)
	_, _ = r.Save(ctx, "older")
	_, _ = r.Save(ctx, "newer")
	writes := kv.Writes()

	tests := []struct {
		index int
		want  string
		ok    bool
	}{
		{0, "newer", true},
		{1, "older", true},
		{2, "", false},
		{-1, "", false},
		{9, "", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("index_%d", tt.index), func(t *testing.T) {
			got, ok, err := r.Apply(ctx, tt.index)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if ok != tt.ok || got != tt.want {
				t.Fatalf("apply(%d) = %q,%v want %q,%v", tt.index, got, ok, tt.want, tt.ok)
			}
		})
	}
	if kv.Writes() != writes {
		t.Fatalf("apply must not write to the store")
	}
	xs, _ := r.List(ctx)
	if len(xs) != 2 {
		t.Fatalf("list changed: %#v", xs)
	}
}

func TestTimestampFormat(t *testing.T) {
	r, _ := newRing(t)
	e, err := r.Save(context.Background(), "x")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.Timestamp != "2026-10-18T12:00:01.000Z" {
		t.Fatalf("timestamp=%q", e.Timestamp)
	}
	if e.Time().IsZero() {
		t.Fatalf("timestamp should parse")
	}
}
