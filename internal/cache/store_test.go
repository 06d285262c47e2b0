package cache

import (
	"testing"
	"time"
)

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	s := New(ttl)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestGetFreshHit(t *testing.T) {
	s, now := newTestStore(5 * time.Minute)

	s.Set(Key("profile", "u1"), "payload")

	*now = now.Add(299 * time.Second)
	v, ok := s.Get(Key("profile", "u1"))
	if !ok {
		t.Fatal("expected hit inside TTL")
	}
	if v.(string) != "payload" {
		t.Fatalf("got %v, want payload", v)
	}
}

func TestGetExpiredEvicts(t *testing.T) {
	s, now := newTestStore(5 * time.Minute)

	s.Set(Key("profile", "u1"), "payload")

	*now = now.Add(301 * time.Second)
	if _, ok := s.Get(Key("profile", "u1")); ok {
		t.Fatal("expected miss at 301s")
	}
	// the expired entry must be gone, not just hidden
	if s.Size() != 0 {
		t.Fatalf("expected entry evicted, size=%d", s.Size())
	}
}

func TestGetExactTTLBoundaryIsMiss(t *testing.T) {
	s, now := newTestStore(5 * time.Minute)

	s.Set(Key("budget", "u1"), 42)
	*now = now.Add(5 * time.Minute) // age == TTL
	if _, ok := s.Get(Key("budget", "u1")); ok {
		t.Fatal("age == TTL must be a miss")
	}
}

func TestLookupReturnsStaleWithoutEvicting(t *testing.T) {
	s, now := newTestStore(5 * time.Minute)

	s.Set(Key("goals", "u1"), []int{1, 2})
	*now = now.Add(10 * time.Minute)

	data, fresh, ok := s.Lookup(Key("goals", "u1"))
	if !ok {
		t.Fatal("expected stale entry to still be present")
	}
	if fresh {
		t.Fatal("entry past TTL must not be fresh")
	}
	if got := data.([]int); len(got) != 2 {
		t.Fatalf("stale payload mangled: %v", got)
	}
	if s.Size() != 1 {
		t.Fatal("Lookup must not evict")
	}
}

func TestSetOverwritesAndRefreshesTimestamp(t *testing.T) {
	s, now := newTestStore(5 * time.Minute)

	s.Set(Key("profile", "u1"), "old")
	*now = now.Add(4 * time.Minute)
	s.Set(Key("profile", "u1"), "new")

	// 4m after the rewrite: would be expired relative to the first
	// write, fresh relative to the second
	*now = now.Add(4 * time.Minute)
	v, ok := s.Get(Key("profile", "u1"))
	if !ok || v.(string) != "new" {
		t.Fatalf("got %v ok=%v, want fresh new", v, ok)
	}
}

func TestClearDropsOnlyThatUser(t *testing.T) {
	s, _ := newTestStore(5 * time.Minute)

	s.Set(Key("profile", "u1"), 1)
	s.Set(Key("goals", "u1"), 2)
	s.Set(Key("profile", "u2"), 3)

	s.Clear("u1")

	if _, _, ok := s.Lookup(Key("profile", "u1")); ok {
		t.Fatal("u1 profile should be cleared")
	}
	if _, _, ok := s.Lookup(Key("goals", "u1")); ok {
		t.Fatal("u1 goals should be cleared")
	}
	if _, _, ok := s.Lookup(Key("profile", "u2")); !ok {
		t.Fatal("u2 must be untouched")
	}
}

func TestCleanExpired(t *testing.T) {
	s, now := newTestStore(5 * time.Minute)

	s.Set(Key("profile", "u1"), 1)
	*now = now.Add(3 * time.Minute)
	s.Set(Key("goals", "u1"), 2)
	*now = now.Add(3 * time.Minute) // first entry now 6m old, second 3m

	if n := s.CleanExpired(); n != 1 {
		t.Fatalf("CleanExpired = %d, want 1", n)
	}
	if s.Size() != 1 {
		t.Fatalf("size = %d, want 1", s.Size())
	}
}
