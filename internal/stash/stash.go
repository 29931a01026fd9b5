// Package stash keeps a short most-recent-first list of text snippets.
package stash

import (
	"context"
	"fmt"
	"time"

	"quickcap/internal/model"
	"quickcap/internal/store"
)

// MaxStashes bounds the list; saving past it evicts the oldest entry.
const MaxStashes = 10

// Ring is the stash list stored under a single key.
type Ring struct {
	repo *store.Repository
	now  func() time.Time
}

func New(repo *store.Repository) *Ring {
	return &Ring{repo: repo, now: time.Now}
}

// WithClock overrides the timestamp source.
func (r *Ring) WithClock(now func() time.Time) *Ring {
	if now != nil {
		r.now = now
	}
	return r
}

// List returns all entries, newest first.
func (r *Ring) List(ctx context.Context) ([]model.StashEntry, error) {
	return r.repo.Stashes(ctx)
}

// Save prepends content and truncates to MaxStashes in one write. Callers reject blank
// content before calling.
func (r *Ring) Save(ctx context.Context, content string) (model.StashEntry, error) {
	xs, err := r.repo.Stashes(ctx)
	if err != nil {
		return model.StashEntry{}, fmt.Errorf("load stashes: %w", err)
	}
	e := model.NewStashEntry(content, r.now())
	next := make([]model.StashEntry, 0, min(len(xs)+1, MaxStashes))
	next = append(next, e)
	next = append(next, xs...)
	if len(next) > MaxStashes {
		next = next[:MaxStashes]
	}
	if err := r.repo.SaveStashes(ctx, next); err != nil {
		return model.StashEntry{}, fmt.Errorf("save stashes: %w", err)
	}
	return e, nil
}

// Apply returns the content at index. Out-of-range indexes report ok=false.
func (r *Ring) Apply(ctx context.Context, index int) (string, bool, error) {
	xs, err := r.repo.Stashes(ctx)
	if err != nil {
		return "", false, err
	}
	if index < 0 || index >= len(xs) {
		return "", false, nil
	}
	return xs[index].Content, true, nil
}

func (r *Ring) Clear(ctx context.Context) error {
	return r.repo.ClearStashes(ctx)
}
