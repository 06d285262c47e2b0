package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Budget is one logical record per user per month. Edits replace the
// whole record; there is no partial-field diffing.
type Budget struct {
	UserID         string                     `json:"user_id"`
	Year           int                        `json:"year"`
	Month          int                        `json:"month"` // 1-12
	OverallMonthly decimal.Decimal            `json:"overall_monthly"`
	Categories     map[string]decimal.Decimal `json:"categories"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

func (b *Budget) Validate() error {
	if b.Month < 1 || b.Month > 12 {
		return errors.New("month must be 1-12")
	}
	if b.Year < 2000 || b.Year > 2100 {
		return errors.New("year out of range")
	}
	if b.OverallMonthly.IsNegative() {
		return errors.New("overall budget cannot be negative")
	}
	for name, amt := range b.Categories {
		if name == "" {
			return errors.New("empty category name")
		}
		if amt.IsNegative() {
			return errors.New("category budget cannot be negative")
		}
	}
	return nil
}

// CategoryTotal sums the per-category allocations.
func (b *Budget) CategoryTotal() decimal.Decimal {
	total := decimal.Zero
	for _, amt := range b.Categories {
		total = total.Add(amt)
	}
	return total
}

// BudgetStatus pairs a budget line with actual spend for the month.
type BudgetStatus struct {
	Category  string          `json:"category"`
	Budgeted  decimal.Decimal `json:"budgeted"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Over      bool            `json:"over"`
}
