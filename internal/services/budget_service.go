package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/cache"
	"github.com/wealthwise/wealthwise-backend/internal/livebalance"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
	"github.com/wealthwise/wealthwise-backend/internal/restore"
)

// BudgetReport pairs a month's budget with actual spend.
type BudgetReport struct {
	Budget     models.Budget              `json:"budget"`
	TotalSpent decimal.Decimal            `json:"total_spent"`
	Remaining  decimal.Decimal            `json:"remaining"`
	Categories []models.BudgetStatus      `json:"categories"`
	Unbudgeted map[string]decimal.Decimal `json:"unbudgeted,omitempty"`
}

type BudgetService struct {
	budgets repo.Budgets
	trx     repo.Transactions
	store   *cache.Store
}

func NewBudgetService(budgets repo.Budgets, trx repo.Transactions, store *cache.Store) *BudgetService {
	return &BudgetService{budgets: budgets, trx: trx, store: store}
}

// Upsert replaces the month's record wholesale.
func (s *BudgetService) Upsert(ctx context.Context, b models.Budget) (models.Budget, error) {
	if err := b.Validate(); err != nil {
		return models.Budget{}, err
	}
	saved, err := s.budgets.Upsert(ctx, b)
	if err != nil {
		return models.Budget{}, err
	}
	s.store.Delete(cache.Key(restore.ResourceBudget, b.UserID))
	return saved, nil
}

// Report computes budget-vs-spend for the month. A missing budget
// record yields an empty budget with the spend still aggregated.
func (s *BudgetService) Report(ctx context.Context, userID string, year, month int) (BudgetReport, error) {
	if month < 1 || month > 12 {
		return BudgetReport{}, errors.New("month must be 1-12")
	}

	b, err := s.budgets.Get(ctx, userID, year, month)
	if errors.Is(err, repo.ErrNotFound) {
		b = models.Budget{UserID: userID, Year: year, Month: month, Categories: map[string]decimal.Decimal{}}
	} else if err != nil {
		return BudgetReport{}, err
	}

	from, to := livebalance.MonthRange(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
	spend, err := s.trx.SpendByCategory(ctx, userID, from, to)
	if err != nil {
		return BudgetReport{}, err
	}

	report := BudgetReport{Budget: b}
	total := decimal.Zero
	for _, amt := range spend {
		total = total.Add(amt)
	}
	report.TotalSpent = total
	report.Remaining = b.OverallMonthly.Sub(total)

	for name, budgeted := range b.Categories {
		spent := spend[name]
		report.Categories = append(report.Categories, models.BudgetStatus{
			Category:  name,
			Budgeted:  budgeted,
			Spent:     spent,
			Remaining: budgeted.Sub(spent),
			Over:      spent.GreaterThan(budgeted),
		})
	}
	for name, spent := range spend {
		if _, ok := b.Categories[name]; !ok {
			if report.Unbudgeted == nil {
				report.Unbudgeted = map[string]decimal.Decimal{}
			}
			report.Unbudgeted[name] = spent
		}
	}
	return report, nil
}
