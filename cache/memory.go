// Package cache provides caching implementations for resolved role
// permission sets.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hireverse/gatekeeper"
	"github.com/hireverse/gatekeeper/permission"
)

// Compile-time interface check.
var _ gatekeeper.Cache = (*Memory)(nil)

// Memory is an in-memory role permission cache with TTL-based expiration
// and a soft capacity bound. When full it evicts the oldest-inserted entry,
// not the least recently used one; role sets are few and refresh cheaply,
// so insertion order is a good enough proxy.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string
	ttl     time.Duration
	maxSize int
}

type entry struct {
	perms     []*permission.Permission
	expiresAt time.Time
}

// MemoryOption configures the memory cache.
type MemoryOption func(*Memory)

// WithTTL sets the cache entry time-to-live.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) { m.ttl = ttl }
}

// WithMaxSize sets the maximum number of cached roles.
func WithMaxSize(n int) MemoryOption {
	return func(m *Memory) { m.maxSize = n }
}

// NewMemory creates a new in-memory cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]*entry),
		ttl:     gatekeeper.DefaultCacheTTL,
		maxSize: gatekeeper.DefaultCacheMaxSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the cached permission set for a role. An expired entry reads
// as absent and is removed.
func (m *Memory) Get(_ context.Context, roleKey string) ([]*permission.Permission, bool) {
	m.mu.RLock()
	e, ok := m.entries[roleKey]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		// Re-check under the write lock: a Set may have replaced the
		// entry between the two lock acquisitions.
		m.mu.Lock()
		if cur, ok := m.entries[roleKey]; ok && time.Now().After(cur.expiresAt) {
			m.remove(roleKey)
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.perms, true
}

// Set stores a role's permission set.
func (m *Memory) Set(_ context.Context, roleKey string, perms []*permission.Permission) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[roleKey]; ok {
		m.remove(roleKey)
	}

	if len(m.entries) >= m.maxSize {
		m.evictExpired()
		if len(m.entries) >= m.maxSize && len(m.order) > 0 {
			m.remove(m.order[0])
		}
	}

	m.entries[roleKey] = &entry{
		perms:     perms,
		expiresAt: time.Now().Add(m.ttl),
	}
	m.order = append(m.order, roleKey)
}

// Invalidate removes the cached permission set for one role.
func (m *Memory) Invalidate(_ context.Context, roleKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(roleKey)
}

// Clear removes all cached permission sets.
func (m *Memory) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*entry)
	m.order = m.order[:0]
}

// Len reports how many roles are cached, expired entries included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// remove deletes one entry and its order slot. Must hold write lock.
func (m *Memory) remove(roleKey string) {
	if _, ok := m.entries[roleKey]; !ok {
		return
	}
	delete(m.entries, roleKey)
	for i, k := range m.order {
		if k == roleKey {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// evictExpired removes all expired entries. Must hold write lock.
func (m *Memory) evictExpired() {
	now := time.Now()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			m.remove(k)
		}
	}
}
