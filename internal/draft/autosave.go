// Package draft persists the editing buffer after a quiet period.
package draft

import (
	"context"
	"sync"
	"time"

	"quickcap/internal/logging"
	"quickcap/internal/store"
)

// Timer is the part of *time.Timer the autosaver needs.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func()) Timer

func realScheduler(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Autosaver writes only the content present at the end of a pause in edits.
type Autosaver struct {
	repo     *store.Repository
	debounce time.Duration
	schedule Scheduler
	log      logging.Logger

	mu         sync.Mutex
	timer      Timer
	gen        uint64
	pending    string
	hasPending bool
}

type Options struct {
	Debounce  time.Duration
	Scheduler Scheduler
	Logger    logging.Logger
}

func NewAutosaver(repo *store.Repository, opts Options) *Autosaver {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = store.DefaultDraftDebounce
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = realScheduler
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Autosaver{repo: repo, debounce: debounce, schedule: sched, log: log}
}

// Edit records text and restarts the quiet period.
func (a *Autosaver) Edit(text string) {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
	a.gen++
	a.pending = text
	a.hasPending = true
	g := a.gen
	a.timer = a.schedule(a.debounce, func() { a.fire(g) })
}

func (a *Autosaver) fire(g uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	// A later Edit, Cancel or Flush superseded this timer.
	if g != a.gen || !a.hasPending {
		return
	}
	a.timer = nil
	a.writeLocked()
}

// Flush writes a pending draft now.
func (a *Autosaver) Flush() {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
	a.gen++
	if a.hasPending {
		a.writeLocked()
	}
}

// Cancel drops a pending write without touching the store.
func (a *Autosaver) Cancel() {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
	a.gen++
	a.pending = ""
	a.hasPending = false
}

// Pending reports whether a write is scheduled.
func (a *Autosaver) Pending() bool {
	if a == nil {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hasPending
}

func (a *Autosaver) stopLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *Autosaver) writeLocked() {
	text := a.pending
	a.pending = ""
	a.hasPending = false
	if err := a.repo.SaveDraft(context.Background(), text); err != nil {
		a.log.Warn("draft save failed", logging.Error(err))
		return
	}
	a.log.Debug("draft saved", logging.Int("bytes", len(text)))
}
