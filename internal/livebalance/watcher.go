// Package livebalance keeps a per-user derived balance fresh:
// base + income for the month − expenses for the month, recomputed on
// every transaction change event.
package livebalance

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/metrics"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	"github.com/wealthwise/wealthwise-backend/internal/notify"
)

// Summer is the two range-filtered sum queries the recompute issues.
type Summer interface {
	SumAmountInRange(ctx context.Context, userID string, kind models.TransactionKind, from, to time.Time) (decimal.Decimal, error)
}

// Snapshot is the caller-facing state of one user's live balance.
type Snapshot struct {
	Loading    bool            `json:"loading"`
	Err        string          `json:"error,omitempty"`
	Balance    decimal.Decimal `json:"balance"`
	Formatted  string          `json:"formatted"`
	IsNegative bool            `json:"is_negative"`
	ComputedAt time.Time       `json:"computed_at"`
}

// MonthRange returns the first and last day of t's calendar month.
// Both ends are inclusive in the sum queries.
func MonthRange(t time.Time) (from, to time.Time) {
	y, m, _ := t.Date()
	from = time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	to = from.AddDate(0, 1, -1)
	return from, to
}

// Watcher recomputes one user's balance. Recomputes are not mutually
// exclusive; instead each carries a sequence number and only the
// newest issued recompute may write its result, so a slow query can
// never overwrite fresher state with stale numbers.
type Watcher struct {
	sums   Summer
	userID string

	mu      sync.Mutex
	base    decimal.Decimal
	snap    Snapshot
	issued  uint64 // last sequence handed out
	applied uint64 // last sequence whose result was written

	cancel func()
	done   chan struct{}
	now    func() time.Time
}

func NewWatcher(sums Summer, hub *notify.Hub, userID string, base decimal.Decimal) *Watcher {
	w := &Watcher{
		sums:   sums,
		userID: userID,
		base:   base,
		snap:   Snapshot{Loading: true, Formatted: FormatINR(decimal.Zero)},
		now:    time.Now,
	}
	events, cancel := hub.Subscribe("transactions")
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.run(events)
	return w
}

// run re-runs both sum queries on every change event, with no
// filtering by user or row. Correctness comes from always re-reading
// the latest truth; the cost is a redundant recompute when an
// unrelated row changes.
func (w *Watcher) run(events <-chan notify.Event) {
	defer close(w.done)
	for range events {
		w.Recompute(context.Background())
	}
}

// SetBase updates the caller-supplied base figure. Returns true if it
// changed, in which case the caller should trigger a recompute.
func (w *Watcher) SetBase(base decimal.Decimal) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.base.Equal(base) {
		return false
	}
	w.base = base
	return true
}

// Stale reports whether the snapshot was computed in a different
// calendar month than now, or never computed at all.
func (w *Watcher) Stale() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.snap.ComputedAt.IsZero() {
		return true
	}
	cy, cm, _ := w.snap.ComputedAt.Date()
	ny, nm, _ := w.now().Date()
	return cy != ny || cm != nm
}

// Recompute issues the two sum queries and applies the result under
// the sequence guard.
func (w *Watcher) Recompute(ctx context.Context) {
	w.mu.Lock()
	w.issued++
	seq := w.issued
	base := w.base
	w.snap.Loading = true
	w.mu.Unlock()

	from, to := MonthRange(w.now())

	income, err := w.sums.SumAmountInRange(ctx, w.userID, models.KindIncome, from, to)
	if err == nil {
		var expense decimal.Decimal
		expense, err = w.sums.SumAmountInRange(ctx, w.userID, models.KindExpense, from, to)
		if err == nil {
			w.apply(seq, base.Add(income).Sub(expense))
			return
		}
	}
	w.fail(seq, err)
}

func (w *Watcher) apply(seq uint64, balance decimal.Decimal) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if seq < w.applied {
		metrics.BalanceRecomputes.WithLabelValues("stale").Inc()
		return
	}
	w.applied = seq
	w.snap = Snapshot{
		Balance:    balance,
		Formatted:  FormatINR(balance),
		IsNegative: balance.IsNegative(),
		ComputedAt: w.now(),
	}
	metrics.BalanceRecomputes.WithLabelValues("applied").Inc()
}

// fail records the error but leaves the previous balance in place; the
// next change event or request retries implicitly.
func (w *Watcher) fail(seq uint64, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if seq < w.applied {
		metrics.BalanceRecomputes.WithLabelValues("stale").Inc()
		return
	}
	w.applied = seq
	w.snap.Loading = false
	w.snap.Err = err.Error()
	metrics.BalanceRecomputes.WithLabelValues("error").Inc()
	slog.Warn("live balance recompute failed", "user_id", w.userID, "err", err)
}

func (w *Watcher) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snap
}

func (w *Watcher) Stop() {
	w.cancel()
	<-w.done
}
