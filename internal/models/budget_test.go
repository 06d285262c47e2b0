package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBudgetValidate(t *testing.T) {
	valid := func() Budget {
		return Budget{
			UserID:         "u1",
			Year:           2025,
			Month:          6,
			OverallMonthly: decimal.NewFromInt(30000),
			Categories: map[string]decimal.Decimal{
				"food": decimal.NewFromInt(8000),
				"rent": decimal.NewFromInt(15000),
			},
		}
	}

	cases := []struct {
		name   string
		mutate func(*Budget)
		ok     bool
	}{
		{"valid", func(b *Budget) {}, true},
		{"no categories", func(b *Budget) { b.Categories = nil }, true},
		{"month zero", func(b *Budget) { b.Month = 0 }, false},
		{"month thirteen", func(b *Budget) { b.Month = 13 }, false},
		{"year out of range", func(b *Budget) { b.Year = 1999 }, false},
		{"negative overall", func(b *Budget) { b.OverallMonthly = decimal.NewFromInt(-1) }, false},
		{"negative category", func(b *Budget) { b.Categories["food"] = decimal.NewFromInt(-1) }, false},
		{"empty category name", func(b *Budget) { b.Categories[""] = decimal.NewFromInt(10) }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := valid()
			tc.mutate(&b)
			err := b.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestBudgetCategoryTotal(t *testing.T) {
	b := Budget{Categories: map[string]decimal.Decimal{
		"food":      decimal.NewFromInt(8000),
		"rent":      decimal.NewFromInt(15000),
		"transport": decimal.NewFromFloat(2500.50),
	}}
	if got := b.CategoryTotal(); !got.Equal(decimal.NewFromFloat(25500.50)) {
		t.Fatalf("CategoryTotal = %s, want 25500.50", got)
	}

	var empty Budget
	if !empty.CategoryTotal().IsZero() {
		t.Fatal("empty budget should total zero")
	}
}
