package livebalance

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/notify"
)

// Registry owns one watcher per user, created lazily on the first
// balance request and stopped together at shutdown.
type Registry struct {
	sums Summer
	hub  *notify.Hub

	mu       sync.Mutex
	watchers map[string]*Watcher
}

func NewRegistry(sums Summer, hub *notify.Hub) *Registry {
	return &Registry{
		sums:     sums,
		hub:      hub,
		watchers: make(map[string]*Watcher),
	}
}

// Snapshot returns the user's current balance state, creating the
// watcher on first use. A changed base or a month boundary forces a
// synchronous recompute so the response is never a whole month stale.
func (r *Registry) Snapshot(ctx context.Context, userID string, base decimal.Decimal) Snapshot {
	r.mu.Lock()
	w, ok := r.watchers[userID]
	if !ok {
		w = NewWatcher(r.sums, r.hub, userID, base)
		r.watchers[userID] = w
	}
	r.mu.Unlock()

	if w.SetBase(base) || w.Stale() {
		w.Recompute(ctx)
	}
	return w.Snapshot()
}

func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, w := range r.watchers {
		w.Stop()
		delete(r.watchers, id)
	}
}
