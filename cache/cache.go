// Package cache provides the in-memory TTL store shared by the catalog
// engine and its enrichment lookups. Values are stored as-is; a present
// entry is authoritative until it expires. Absence is signalled by the
// boolean return, so false, empty strings and nil are all legitimate
// cached values.
package cache

import (
	"sync"
	"time"
)

// Store is the read/write contract callers depend on. Every reader must
// tolerate a miss on any key: the cache is best-effort and entries can
// vanish through expiry or eviction at any time.
type Store interface {
	// Get returns the stored value and true if the key is present and not
	// expired, otherwise nil and false.
	Get(key string) (any, bool)

	// Set stores a value under key, replacing any prior entry. A ttl <= 0
	// selects the store's default TTL.
	Set(key string, value any, ttl time.Duration)
}

type entry struct {
	value     any
	createdAt time.Time
	ttl       time.Duration
}

func (e entry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.createdAt) > e.ttl
}

// Memory is a mutex-guarded map store with a default TTL and a maximum
// entry count. When the count would exceed the maximum, the oldest
// entries by insertion time are evicted first. Oldest-first was chosen
// over LRU: the bound exists to cap memory, not to optimise hit rate,
// and it keeps Get free of bookkeeping writes.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration
	maxEntries int

	now func() time.Time // overridable in tests
}

// NewMemory creates a store with the given default TTL and entry bound.
// maxEntries <= 0 means unbounded.
func NewMemory(defaultTTL time.Duration, maxEntries int) *Memory {
	return &Memory{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get implements Store. Expired entries are purged lazily here.
func (m *Memory) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set implements Store.
func (m *Memory) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.evictOldestLocked(len(m.entries) - m.maxEntries + 1)
	}
	m.entries[key] = entry{value: value, createdAt: m.now(), ttl: ttl}
}

// Delete removes a key if present.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Len returns the current entry count, expired entries included until
// they are purged.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Sweep removes every expired entry. It is called periodically by the
// goroutine StartSweep launches, and can be invoked directly.
func (m *Memory) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
		}
	}
}

// StartSweep launches a background sweep every interval and returns a
// stop function. Stop is idempotent.
func (m *Memory) StartSweep(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	var once sync.Once

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				m.Sweep()
			case <-done:
				return
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}

// evictOldestLocked drops the n entries with the oldest creation times.
// Called with the mutex held.
func (m *Memory) evictOldestLocked(n int) {
	for ; n > 0; n-- {
		var oldestKey string
		var oldestAt time.Time
		first := true
		for k, e := range m.entries {
			if first || e.createdAt.Before(oldestAt) {
				oldestKey, oldestAt = k, e.createdAt
				first = false
			}
		}
		if first {
			return
		}
		delete(m.entries, oldestKey)
	}
}
