// Package restore rebuilds a user's working set (profile,
// transactions, budget, goals) after a reload: cache first, database
// on a miss, and a stale cache copy as the fallback of last resort.
package restore

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wealthwise/wealthwise-backend/internal/cache"
	"github.com/wealthwise/wealthwise-backend/internal/metrics"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	"github.com/wealthwise/wealthwise-backend/internal/repository"
)

const (
	ResourceProfile      = "profile"
	ResourceTransactions = "transactions"
	ResourceBudget       = "budget"
	ResourceGoals        = "goals"
)

// how many recent transactions a restore brings back
const transactionPage = 100

// ErrIncomplete marks a fetch that returned without error but failed
// the policy's completeness check.
var ErrIncomplete = errors.New("incomplete result")

// RetryPolicy declares how a flaky fetch is retried instead of the ad
// hoc extra attempt it replaces.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	// Incomplete, when set, rejects a non-error result and counts the
	// attempt as failed.
	Incomplete func(any) bool
}

// DefaultRetryPolicy preserves the historical behavior: one retry, no
// backoff, a nil result counts as incomplete.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 2,
		Backoff:     0,
		Incomplete:  func(v any) bool { return v == nil },
	}
}

// Sources are the authoritative reads behind the cache.
type Sources struct {
	Profiles     repository.Profiles
	Transactions repository.Transactions
	Budgets      repository.Budgets
	Goals        repository.Goals
}

// Result reports each resource independently. Success is true only if
// every resource loaded, but whatever did load is always returned.
type Result struct {
	Success      bool                 `json:"success"`
	Profile      *models.Profile      `json:"profile"`
	Transactions []models.Transaction `json:"transactions"`
	Budget       *models.Budget       `json:"budget"`
	Goals        []models.Goal        `json:"goals"`
	Origins      map[string]string    `json:"origins"` // cache | fetch | stale
	Errors       map[string]string    `json:"errors,omitempty"`
}

type Service struct {
	cache *cache.Store
	src   Sources

	profileTimeout time.Duration
	profileRetry   RetryPolicy

	group singleflight.Group
	log   *slog.Logger
	now   func() time.Time
}

func New(store *cache.Store, src Sources, profileTimeout time.Duration, profileRetry RetryPolicy, log *slog.Logger) *Service {
	if profileRetry.MaxAttempts < 1 {
		profileRetry.MaxAttempts = 1
	}
	return &Service{
		cache:          store,
		src:            src,
		profileTimeout: profileTimeout,
		profileRetry:   profileRetry,
		log:            log,
		now:            time.Now,
	}
}

// Restore loads all resources for the user. Concurrent calls for the
// same user are coalesced onto one in-flight restore; the second
// caller waits for the first instead of issuing duplicate queries.
func (s *Service) Restore(ctx context.Context, userID string) Result {
	v, _, shared := s.group.Do(userID, func() (any, error) {
		return s.restore(ctx, userID), nil
	})
	if shared {
		metrics.RestoreCoalesced.Inc()
	}
	return v.(Result)
}

func (s *Service) restore(ctx context.Context, userID string) Result {
	res := Result{
		Origins: make(map[string]string, 4),
		Errors:  make(map[string]string),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	load := func(name string, timeout time.Duration, retry RetryPolicy, fetch func(context.Context) (any, error), assign func(any)) {
		defer wg.Done()
		data, origin, err := s.loadResource(ctx, name, userID, timeout, retry, fetch)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			res.Errors[name] = err.Error()
			return
		}
		res.Origins[name] = origin
		assign(data)
	}

	// Only the profile lookup is time-boxed and retried; the other
	// fetches run unbounded with a single attempt.
	once := RetryPolicy{MaxAttempts: 1}

	wg.Add(4)
	go load(ResourceProfile, s.profileTimeout, s.profileRetry, func(ctx context.Context) (any, error) {
		p, err := s.src.Profiles.Get(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			// no questionnaire yet: a real absence, not a failure
			return (*models.Profile)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		return &p, nil
	}, func(v any) { res.Profile, _ = v.(*models.Profile) })

	go load(ResourceTransactions, 0, once, func(ctx context.Context) (any, error) {
		txs, err := s.src.Transactions.ListByUser(ctx, userID, nil, transactionPage, 0)
		if err != nil {
			return nil, err
		}
		return txs, nil
	}, func(v any) { res.Transactions, _ = v.([]models.Transaction) })

	go load(ResourceBudget, 0, once, func(ctx context.Context) (any, error) {
		now := s.now()
		b, err := s.src.Budgets.Get(ctx, userID, now.Year(), int(now.Month()))
		if errors.Is(err, repository.ErrNotFound) {
			return (*models.Budget)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		return &b, nil
	}, func(v any) { res.Budget, _ = v.(*models.Budget) })

	go load(ResourceGoals, 0, once, func(ctx context.Context) (any, error) {
		gs, err := s.src.Goals.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return gs, nil
	}, func(v any) { res.Goals, _ = v.([]models.Goal) })

	wg.Wait()

	res.Success = len(res.Errors) == 0
	if !res.Success {
		s.log.Warn("restore finished with failures", "user_id", userID, "errors", res.Errors)
	}
	return res
}

// loadResource is the read path for one resource: fresh cache hit,
// else fetch (bounded by timeout, governed by the retry policy), else
// any cached copy, even an expired one, before surfacing failure.
func (s *Service) loadResource(ctx context.Context, name, userID string, timeout time.Duration, retry RetryPolicy, fetch func(context.Context) (any, error)) (any, string, error) {
	key := cache.Key(name, userID)

	if data, fresh, ok := s.cache.Lookup(key); ok && fresh {
		metrics.CacheHits.WithLabelValues(name).Inc()
		return data, "cache", nil
	}
	metrics.CacheMisses.WithLabelValues(name).Inc()

	var data any
	var err error
	for attempt := 1; attempt <= retry.MaxAttempts; attempt++ {
		fctx := ctx
		cancel := func() {}
		if timeout > 0 {
			fctx, cancel = context.WithTimeout(ctx, timeout)
		}
		data, err = fetch(fctx)
		cancel()

		if err == nil && retry.Incomplete != nil && retry.Incomplete(data) {
			err = ErrIncomplete
		}
		if err == nil {
			s.cache.Set(key, data)
			return data, "fetch", nil
		}
		if attempt < retry.MaxAttempts && retry.Backoff > 0 {
			select {
			case <-time.After(retry.Backoff):
			case <-ctx.Done():
				return nil, "", ctx.Err()
			}
		}
	}

	// expired copy beats no copy
	if data, _, ok := s.cache.Lookup(key); ok {
		metrics.RestoreStaleFallbacks.Inc()
		s.log.Warn("restore: serving stale cache after fetch failure",
			"resource", name, "user_id", userID, "err", err)
		return data, "stale", nil
	}
	return nil, "", err
}

// Invalidate drops every cached resource for the user so the next
// restore reads through to the database.
func (s *Service) Invalidate(userID string) {
	s.cache.Clear(userID)
}
