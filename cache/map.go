// Package cache provides the caching verse service and its in-memory
// time-expiring store.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/shlok"
)

// Compile-time interface verification.
var _ shlok.VerseCache = (*Map)(nil)

// Map is an unbounded in-memory verse cache. Every entry is evicted by its
// own timer when its TTL elapses.
type Map struct {
	mu      sync.RWMutex
	entries map[int]*entry
	now     func() time.Time
}

type entry struct {
	verse     shlok.Verse
	expiresAt time.Time
	timer     *time.Timer
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{
		entries: make(map[int]*entry),
		now:     time.Now,
	}
}

// Get returns a copy of the live entry for index.
func (m *Map) Get(_ context.Context, index int) (*shlok.Verse, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[index]
	m.mu.RUnlock()

	// The timer may not have fired yet for an entry that is already stale.
	if !ok || !m.now().Before(e.expiresAt) {
		return nil, false, nil
	}

	v := e.verse
	return &v, true, nil
}

// Set stores a copy of v and schedules its eviction after ttl.
// An existing entry for index is replaced along with its timer.
func (m *Map) Set(_ context.Context, index int, v *shlok.Verse, ttl time.Duration) error {
	if v == nil {
		return shlok.Errorf(shlok.EINVALID, "cannot cache nil verse")
	}

	e := &entry{
		verse:     *v,
		expiresAt: m.now().Add(ttl),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.entries[index]; ok {
		old.timer.Stop()
	}
	e.timer = time.AfterFunc(ttl, func() { m.evict(index, e) })
	m.entries[index] = e

	return nil
}

// Delete removes the entry for index, if any.
func (m *Map) Delete(_ context.Context, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[index]; ok {
		e.timer.Stop()
		delete(m.entries, index)
	}
	return nil
}

// Len returns the number of entries currently held, including entries whose
// eviction timer has not fired yet.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close stops all eviction timers and drops every entry.
func (m *Map) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for index, e := range m.entries {
		e.timer.Stop()
		delete(m.entries, index)
	}
	return nil
}

// evict removes e only if it is still the entry stored under index, so a
// late timer never drops a newer write.
func (m *Map) evict(index int, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entries[index] == e {
		delete(m.entries, index)
	}
}
