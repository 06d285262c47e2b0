package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/cache"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
)

type stubBudgets struct {
	budget models.Budget
	found  bool
	saved  *models.Budget
}

func (s *stubBudgets) Get(ctx context.Context, userID string, year, month int) (models.Budget, error) {
	if !s.found {
		return models.Budget{}, repo.ErrNotFound
	}
	return s.budget, nil
}

func (s *stubBudgets) Upsert(ctx context.Context, b models.Budget) (models.Budget, error) {
	s.saved = &b
	return b, nil
}

type stubSpendRepo struct {
	noopTransactions
	spend map[string]decimal.Decimal
}

func (s *stubSpendRepo) SpendByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	return s.spend, nil
}

// noopTransactions fills the parts of the interface a test does not
// care about.
type noopTransactions struct{}

func (noopTransactions) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	return t, nil
}
func (noopTransactions) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	return models.Transaction{}, repo.ErrNotFound
}
func (noopTransactions) Update(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	return t, nil
}
func (noopTransactions) Delete(ctx context.Context, id, userID string) error { return nil }
func (noopTransactions) ListByUser(ctx context.Context, userID string, kind *models.TransactionKind, limit, offset int) ([]models.Transaction, error) {
	return nil, nil
}
func (noopTransactions) SumAmountInRange(ctx context.Context, userID string, kind models.TransactionKind, from, to time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (noopTransactions) SpendByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	return nil, nil
}

func dec(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

func TestBudgetReport(t *testing.T) {
	budgets := &stubBudgets{
		found: true,
		budget: models.Budget{
			UserID:         "u1",
			Year:           2025,
			Month:          6,
			OverallMonthly: dec(30000),
			Categories: map[string]decimal.Decimal{
				"food": dec(5000),
				"rent": dec(15000),
			},
		},
	}
	trx := &stubSpendRepo{spend: map[string]decimal.Decimal{
		"food": dec(6000),
		"rent": dec(15000),
		"misc": dec(1200),
	}}

	svc := NewBudgetService(budgets, trx, cache.New(time.Minute))
	report, err := svc.Report(context.Background(), "u1", 2025, 6)
	if err != nil {
		t.Fatal(err)
	}

	if !report.TotalSpent.Equal(dec(22200)) {
		t.Fatalf("TotalSpent = %s, want 22200", report.TotalSpent)
	}
	if !report.Remaining.Equal(dec(7800)) {
		t.Fatalf("Remaining = %s, want 7800", report.Remaining)
	}

	byName := map[string]models.BudgetStatus{}
	for _, st := range report.Categories {
		byName[st.Category] = st
	}
	food := byName["food"]
	if !food.Over || !food.Remaining.Equal(dec(-1000)) {
		t.Fatalf("food status wrong: %+v", food)
	}
	rent := byName["rent"]
	if rent.Over || !rent.Remaining.IsZero() {
		t.Fatalf("rent at exactly budget must not be over: %+v", rent)
	}
	if got, ok := report.Unbudgeted["misc"]; !ok || !got.Equal(dec(1200)) {
		t.Fatalf("misc should surface as unbudgeted spend, got %v", report.Unbudgeted)
	}
}

func TestBudgetReportNoBudgetRecord(t *testing.T) {
	trx := &stubSpendRepo{spend: map[string]decimal.Decimal{"food": dec(900)}}
	svc := NewBudgetService(&stubBudgets{}, trx, cache.New(time.Minute))

	report, err := svc.Report(context.Background(), "u1", 2025, 6)
	if err != nil {
		t.Fatal(err)
	}
	if !report.TotalSpent.Equal(dec(900)) {
		t.Fatalf("TotalSpent = %s, want 900", report.TotalSpent)
	}
	if len(report.Categories) != 0 {
		t.Fatalf("no budget lines expected, got %+v", report.Categories)
	}
	if got := report.Unbudgeted["food"]; !got.Equal(dec(900)) {
		t.Fatalf("spend should still be aggregated, got %v", report.Unbudgeted)
	}
}

func TestBudgetReportRejectsBadMonth(t *testing.T) {
	svc := NewBudgetService(&stubBudgets{}, &stubSpendRepo{}, cache.New(time.Minute))
	if _, err := svc.Report(context.Background(), "u1", 2025, 13); err == nil {
		t.Fatal("month 13 must be rejected")
	}
}

func TestBudgetUpsertInvalidatesCache(t *testing.T) {
	store := cache.New(time.Minute)
	store.Set(cache.Key("budget", "u1"), "cached")

	budgets := &stubBudgets{}
	svc := NewBudgetService(budgets, &stubSpendRepo{}, store)

	_, err := svc.Upsert(context.Background(), models.Budget{
		UserID:         "u1",
		Year:           2025,
		Month:          6,
		OverallMonthly: dec(30000),
	})
	if err != nil {
		t.Fatal(err)
	}
	if budgets.saved == nil {
		t.Fatal("budget not persisted")
	}
	if _, _, ok := store.Lookup(cache.Key("budget", "u1")); ok {
		t.Fatal("cached budget should be dropped after upsert")
	}
}
