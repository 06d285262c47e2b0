// Package cache is a time-boxed read-through cache in front of the
// database. Entries are strictly optional accelerants: the database
// stays the source of truth and losing an entry is always safe.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/wealthwise/wealthwise-backend/internal/metrics"
)

// DefaultTTL is the freshness window for every entry. Eviction is
// purely per-entry and time-based; there is no size bound.
const DefaultTTL = 5 * time.Minute

type entry struct {
	data     any
	storedAt time.Time
}

type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry

	// now is swappable so tests can move the clock.
	now func() time.Time
}

func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Key builds the namespaced key for a user's resource.
func Key(resource, userID string) string {
	return resource + ":" + userID
}

func resourceOf(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// Get returns a hit only while the entry is fresh (age < TTL). An
// expired entry is evicted and reported as a miss.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		metrics.CacheMisses.WithLabelValues(resourceOf(key)).Inc()
		return nil, false
	}
	if s.now().Sub(e.storedAt) >= s.ttl {
		delete(s.entries, key)
		metrics.CacheEvictions.Inc()
		metrics.CacheMisses.WithLabelValues(resourceOf(key)).Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues(resourceOf(key)).Inc()
	return e.data, true
}

// Lookup returns the entry without evicting it, reporting whether it
// is still fresh. The restore path reads through this first so a
// failed fetch can still fall back to a stale copy.
func (s *Store) Lookup(key string) (data any, fresh, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, present := s.entries[key]
	if !present {
		return nil, false, false
	}
	return e.data, s.now().Sub(e.storedAt) < s.ttl, true
}

// Set unconditionally overwrites the entry with a new timestamp.
func (s *Store) Set(key string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{data: data, storedAt: s.now()}
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Clear drops every entry belonging to the user, across resources.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if strings.HasSuffix(key, ":"+userID) {
			delete(s.entries, key)
		}
	}
}

// CleanExpired removes every expired entry and returns how many were
// dropped. Wired to a periodic sweep so stale fallbacks do not pile up
// forever.
func (s *Store) CleanExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	now := s.now()
	for key, e := range s.entries {
		if now.Sub(e.storedAt) >= s.ttl {
			delete(s.entries, key)
			n++
		}
	}
	return n
}

func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
