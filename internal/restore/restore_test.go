package restore

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/cache"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	"github.com/wealthwise/wealthwise-backend/internal/repository"
)

// --- fakes -----------------------------------------------------------

type fakeProfiles struct {
	mu             sync.Mutex
	calls          int
	failuresBefore int           // first N calls fail
	delay          time.Duration // honored via ctx so timeouts fire
	gate           chan struct{} // when set, first call blocks until closed
	started        chan struct{} // closed when the first call begins
	profile        models.Profile
	notFound       bool
}

func (f *fakeProfiles) Get(ctx context.Context, userID string) (models.Profile, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()

	if n == 1 && f.gate != nil {
		close(f.started)
		<-f.gate
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return models.Profile{}, ctx.Err()
		}
	}
	if n <= f.failuresBefore {
		return models.Profile{}, errors.New("profile backend down")
	}
	if f.notFound {
		return models.Profile{}, repository.ErrNotFound
	}
	return f.profile, nil
}

func (f *fakeProfiles) Upsert(ctx context.Context, p models.Profile) (models.Profile, error) {
	return p, nil
}

func (f *fakeProfiles) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeTransactions struct {
	calls atomic.Int64
	txs   []models.Transaction
	err   error
}

func (f *fakeTransactions) ListByUser(ctx context.Context, userID string, kind *models.TransactionKind, limit, offset int) ([]models.Transaction, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.txs, nil
}

func (f *fakeTransactions) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	return t, nil
}
func (f *fakeTransactions) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	return models.Transaction{}, repository.ErrNotFound
}
func (f *fakeTransactions) Update(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	return t, nil
}
func (f *fakeTransactions) Delete(ctx context.Context, id, userID string) error { return nil }
func (f *fakeTransactions) SumAmountInRange(ctx context.Context, userID string, kind models.TransactionKind, from, to time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (f *fakeTransactions) SpendByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	return nil, nil
}

type fakeBudgets struct {
	calls atomic.Int64
	b     models.Budget
	found bool
}

func (f *fakeBudgets) Get(ctx context.Context, userID string, year, month int) (models.Budget, error) {
	f.calls.Add(1)
	if !f.found {
		return models.Budget{}, repository.ErrNotFound
	}
	return f.b, nil
}
func (f *fakeBudgets) Upsert(ctx context.Context, b models.Budget) (models.Budget, error) {
	return b, nil
}

type fakeGoals struct {
	calls atomic.Int64
	gs    []models.Goal
}

func (f *fakeGoals) ListByUser(ctx context.Context, userID string) ([]models.Goal, error) {
	f.calls.Add(1)
	return f.gs, nil
}
func (f *fakeGoals) Create(ctx context.Context, g models.Goal) (models.Goal, error) { return g, nil }
func (f *fakeGoals) GetByID(ctx context.Context, id string) (models.Goal, error) {
	return models.Goal{}, repository.ErrNotFound
}
func (f *fakeGoals) Update(ctx context.Context, g models.Goal) (models.Goal, error) { return g, nil }
func (f *fakeGoals) Delete(ctx context.Context, id, userID string) error            { return nil }

// --- helpers ---------------------------------------------------------

func newService(t *testing.T, store *cache.Store, src Sources, timeout time.Duration, retry RetryPolicy) *Service {
	t.Helper()
	return New(store, src, timeout, retry, slog.Default())
}

func sources(p *fakeProfiles, tx *fakeTransactions, b *fakeBudgets, g *fakeGoals) Sources {
	return Sources{Profiles: p, Transactions: tx, Budgets: b, Goals: g}
}

var testProfile = models.Profile{UserID: "u1", HouseholdSize: 3, MonthlyIncome: decimal.NewFromInt(40000)}

// --- tests -----------------------------------------------------------

func TestRestoreAllFromSource(t *testing.T) {
	p := &fakeProfiles{profile: testProfile}
	tx := &fakeTransactions{txs: []models.Transaction{{ID: "t1"}}}
	b := &fakeBudgets{found: true, b: models.Budget{UserID: "u1", Year: 2025, Month: 6}}
	g := &fakeGoals{gs: []models.Goal{{ID: "g1", Name: "Emergency fund"}}}

	s := newService(t, cache.New(time.Minute), sources(p, tx, b, g), 3*time.Second, DefaultRetryPolicy())

	res := s.Restore(context.Background(), "u1")
	if !res.Success {
		t.Fatalf("expected success, errors: %v", res.Errors)
	}
	if res.Profile == nil || !res.Profile.MonthlyIncome.Equal(decimal.NewFromInt(40000)) {
		t.Fatalf("profile not restored: %+v", res.Profile)
	}
	if len(res.Transactions) != 1 || len(res.Goals) != 1 || res.Budget == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	for _, resource := range []string{ResourceProfile, ResourceTransactions, ResourceBudget, ResourceGoals} {
		if res.Origins[resource] != "fetch" {
			t.Fatalf("%s origin = %q, want fetch", resource, res.Origins[resource])
		}
	}
}

func TestRestoreSecondCallHitsCache(t *testing.T) {
	p := &fakeProfiles{profile: testProfile}
	tx := &fakeTransactions{}
	b := &fakeBudgets{}
	g := &fakeGoals{}

	s := newService(t, cache.New(time.Minute), sources(p, tx, b, g), 3*time.Second, DefaultRetryPolicy())

	_ = s.Restore(context.Background(), "u1")
	res := s.Restore(context.Background(), "u1")

	if !res.Success {
		t.Fatalf("expected success, errors: %v", res.Errors)
	}
	if res.Origins[ResourceProfile] != "cache" {
		t.Fatalf("profile origin = %q, want cache", res.Origins[ResourceProfile])
	}
	if got := p.callCount(); got != 1 {
		t.Fatalf("profile fetched %d times, want 1", got)
	}
}

func TestConcurrentRestoresCoalesce(t *testing.T) {
	p := &fakeProfiles{
		profile: testProfile,
		gate:    make(chan struct{}),
		started: make(chan struct{}),
	}
	tx := &fakeTransactions{}
	b := &fakeBudgets{}
	g := &fakeGoals{}

	s := newService(t, cache.New(time.Minute), sources(p, tx, b, g), 3*time.Second, DefaultRetryPolicy())

	var wg sync.WaitGroup
	results := make([]Result, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = s.Restore(context.Background(), "u1")
	}()
	<-p.started // first restore is in flight, blocked inside the profile fetch

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1] = s.Restore(context.Background(), "u1")
	}()

	// give the second caller time to join the in-flight group
	time.Sleep(20 * time.Millisecond)
	close(p.gate)
	wg.Wait()

	if got := p.callCount(); got != 1 {
		t.Fatalf("profile fetched %d times, want 1 (coalesced)", got)
	}
	if got := tx.calls.Load(); got != 1 {
		t.Fatalf("transactions fetched %d times, want 1", got)
	}
	if got := g.calls.Load(); got != 1 {
		t.Fatalf("goals fetched %d times, want 1", got)
	}
	for i, res := range results {
		if !res.Success {
			t.Fatalf("restore %d failed: %v", i, res.Errors)
		}
	}
}

func TestProfileTimeoutFallsBackToStaleCache(t *testing.T) {
	// nanosecond TTL: anything written is immediately expired
	store := cache.New(time.Nanosecond)
	stale := testProfile
	store.Set(cache.Key(ResourceProfile, "u1"), &stale)
	time.Sleep(time.Millisecond)

	p := &fakeProfiles{profile: testProfile, delay: 500 * time.Millisecond}
	s := newService(t, store, sources(p, &fakeTransactions{}, &fakeBudgets{}, &fakeGoals{}),
		20*time.Millisecond, RetryPolicy{MaxAttempts: 1})

	start := time.Now()
	res := s.Restore(context.Background(), "u1")

	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Fatalf("restore did not respect the timeout, took %v", elapsed)
	}
	if !res.Success {
		t.Fatalf("expected stale fallback success, errors: %v", res.Errors)
	}
	if res.Origins[ResourceProfile] != "stale" {
		t.Fatalf("profile origin = %q, want stale", res.Origins[ResourceProfile])
	}
	if res.Profile == nil || res.Profile.UserID != "u1" {
		t.Fatalf("stale profile not returned: %+v", res.Profile)
	}
}

func TestPartialFailureKeepsWhatLoaded(t *testing.T) {
	p := &fakeProfiles{profile: testProfile}
	tx := &fakeTransactions{err: errors.New("transactions backend down")}

	s := newService(t, cache.New(time.Minute), sources(p, tx, &fakeBudgets{}, &fakeGoals{}),
		3*time.Second, DefaultRetryPolicy())

	res := s.Restore(context.Background(), "u1")

	if res.Success {
		t.Fatal("expected Success=false on partial failure")
	}
	if res.Profile == nil {
		t.Fatal("profile should still be populated")
	}
	if res.Transactions != nil {
		t.Fatalf("transactions should be empty, got %v", res.Transactions)
	}
	if res.Errors[ResourceTransactions] == "" {
		t.Fatal("expected an error recorded for transactions")
	}
}

func TestRetryPolicyRetriesFlakyProfileFetch(t *testing.T) {
	p := &fakeProfiles{profile: testProfile, failuresBefore: 1}

	s := newService(t, cache.New(time.Minute), sources(p, &fakeTransactions{}, &fakeBudgets{}, &fakeGoals{}),
		time.Second, RetryPolicy{MaxAttempts: 2})

	res := s.Restore(context.Background(), "u1")

	if !res.Success {
		t.Fatalf("expected retry to succeed, errors: %v", res.Errors)
	}
	if res.Origins[ResourceProfile] != "fetch" {
		t.Fatalf("profile origin = %q, want fetch", res.Origins[ResourceProfile])
	}
	if got := p.callCount(); got != 2 {
		t.Fatalf("profile fetched %d times, want 2", got)
	}
}

func TestMissingProfileIsNotAFailure(t *testing.T) {
	p := &fakeProfiles{notFound: true}

	s := newService(t, cache.New(time.Minute), sources(p, &fakeTransactions{}, &fakeBudgets{}, &fakeGoals{}),
		time.Second, DefaultRetryPolicy())

	res := s.Restore(context.Background(), "new-user")
	if !res.Success {
		t.Fatalf("a user without a questionnaire must restore cleanly: %v", res.Errors)
	}
	if res.Profile != nil {
		t.Fatalf("profile should be nil, got %+v", res.Profile)
	}
}
