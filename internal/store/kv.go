package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// KV is the durable string-keyed store behind settings, draft and stash persistence.
//
// Implementations must be safe for concurrent use: the draft autosaver writes from a
// timer goroutine while the UI goroutine reads and writes other keys.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key; removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by OpenKV.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// OpenKV opens the backend selected by cfg. An empty backend means sqlite.
func OpenKV(ctx context.Context, cfg StoreConfig) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendSQLite:
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			dir, err := ConfigDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, defaultSQLiteFileName)
		}
		return OpenSQLiteKV(ctx, path)
	case BackendRedis:
		return OpenRedisKV(ctx, cfg.Redis)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
