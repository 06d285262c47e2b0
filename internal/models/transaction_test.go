package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validTransaction() Transaction {
	return Transaction{
		UserID:        "u1",
		Kind:          KindExpense,
		Amount:        decimal.NewFromInt(250),
		Category:      "food",
		Date:          time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "upi",
	}
}

func TestTransactionValidate(t *testing.T) {
	monthly := FreqMonthly
	bogus := RecurringFrequency("fortnightly")

	cases := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error // nil means any non-nil error is accepted
		ok      bool
	}{
		{"valid expense", func(tr *Transaction) {}, nil, true},
		{"valid income", func(tr *Transaction) { tr.Kind = KindIncome }, nil, true},
		{"empty kind", func(tr *Transaction) { tr.Kind = "" }, ErrInvalidKind, false},
		{"unknown kind", func(tr *Transaction) { tr.Kind = "transfer" }, ErrInvalidKind, false},
		{"zero amount", func(tr *Transaction) { tr.Amount = decimal.Zero }, ErrInvalidAmount, false},
		{"negative amount", func(tr *Transaction) { tr.Amount = decimal.NewFromInt(-10) }, ErrInvalidAmount, false},
		{"blank category", func(tr *Transaction) { tr.Category = "  " }, nil, false},
		{"blank payment method", func(tr *Transaction) { tr.PaymentMethod = "" }, nil, false},
		{"zero date", func(tr *Transaction) { tr.Date = time.Time{} }, nil, false},
		{"recurring without frequency", func(tr *Transaction) { tr.IsRecurring = true }, nil, false},
		{"recurring with frequency", func(tr *Transaction) {
			tr.IsRecurring = true
			tr.Frequency = &monthly
		}, nil, true},
		{"recurring with bogus frequency", func(tr *Transaction) {
			tr.IsRecurring = true
			tr.Frequency = &bogus
		}, nil, false},
		{"frequency without recurring flag is ignored", func(tr *Transaction) {
			tr.Frequency = &monthly
		}, nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := validTransaction()
			tc.mutate(&tr)
			err := tr.Validate()
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}
