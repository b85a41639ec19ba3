// Package cache stores rendered pages so repeated crawler hits do not pay
// for re-rendering.
package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a rendered-page cache keyed by page path or content hash.
type Store interface {
	// Get returns the cached page and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, page string) error
	Delete(ctx context.Context, key string) error
	// Flush drops every cached page.
	Flush(ctx context.Context) error
	Close() error
}

// Memory is an in-process Store with TTL eviction.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	page    string
	expires time.Time
}

// NewMemory creates an in-memory store. A zero ttl means entries never
// expire.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		delete(m.entries, key)
		return "", false, nil
	}
	return e.page, true, nil
}

func (m *Memory) Set(ctx context.Context, key, page string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry{page: page}
	if m.ttl > 0 {
		e.expires = time.Now().Add(m.ttl)
	}
	m.entries[key] = e
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *Memory) Flush(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry)
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// Cleanup removes expired entries. Get already evicts lazily; this exists
// for callers that keep a store around with few reads.
func (m *Memory) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for key, e := range m.entries {
		if !e.expires.IsZero() && now.After(e.expires) {
			delete(m.entries, key)
		}
	}
}
