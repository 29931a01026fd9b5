package store

import (
	"context"
	"sync"
)

// MemoryKV is a process-local KV. It backs `--store memory` and most tests.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string

	// writes counts Set and Remove calls; tests use it to assert write coalescing.
	writes int
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string]string{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.writes++
	return nil
}

func (m *MemoryKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.writes++
	return nil
}

func (m *MemoryKV) Close() error { return nil }

// Writes reports how many mutating calls the store has seen.
func (m *MemoryKV) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Keys returns a snapshot of the stored keys.
func (m *MemoryKV) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.data))
	for k := range m.data {
		out = append(out, k)
	}
	return out
}
