// Package cache keeps short-lived computed values in process memory,
// such as analytics reports and public catalogue listings.
package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Observer is notified of every lookup. The monitor uses it to count hits and misses.
type Observer func(hit bool)

type entry struct {
	value     any
	expiresAt time.Time
}

// Stats is a point-in-time view of the cache.
type Stats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// Manager is a TTL cache keyed by string. It is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	items    map[string]entry
	ttl      time.Duration
	now      func() time.Time
	group    singleflight.Group
	hits     atomic.Uint64
	misses   atomic.Uint64
	observer Observer
}

// New returns a Manager whose entries live for ttl. A non-positive ttl disables caching.
func New(ttl time.Duration) *Manager {
	return &Manager{items: make(map[string]entry), ttl: ttl, now: time.Now}
}

// Observe installs fn as the lookup observer.
func (m *Manager) Observe(fn Observer) {
	m.observer = fn
}

// Get returns the cached value for key, if present and fresh.
func (m *Manager) Get(key string) (any, bool) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()

	if ok && m.now().Before(e.expiresAt) {
		m.record(true)
		return e.value, true
	}
	m.record(false)
	return nil, false
}

// Set stores value under key for the configured TTL.
func (m *Manager) Set(key string, value any) {
	if m.ttl <= 0 {
		return
	}
	m.mu.Lock()
	m.items[key] = entry{value: value, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
}

// GetOrLoad returns the cached value for key or calls load once, even under
// concurrent callers, and caches its result. Errors are not cached.
func (m *Manager) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := m.Get(key); ok {
		return v, nil
	}
	v, err, _ := m.group.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
		return v, nil
	})
	return v, err
}

// Delete removes key.
func (m *Manager) Delete(key string) {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
}

// DeletePrefix removes every key starting with prefix and returns how many were removed.
func (m *Manager) DeletePrefix(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
			n++
		}
	}
	return n
}

// Purge drops expired entries and returns how many were removed.
func (m *Manager) Purge() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, e := range m.items {
		if !now.Before(e.expiresAt) {
			delete(m.items, k)
			n++
		}
	}
	return n
}

// Run purges expired entries every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Purge()
		}
	}
}

// Stats returns entry count and lookup counters.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	n := len(m.items)
	m.mu.RUnlock()
	return Stats{Entries: n, Hits: m.hits.Load(), Misses: m.misses.Load()}
}

func (m *Manager) record(hit bool) {
	if hit {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	if m.observer != nil {
		m.observer(hit)
	}
}
