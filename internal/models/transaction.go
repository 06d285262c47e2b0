package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind discriminates the two transaction variants. Every
// row is exactly one of the two; list and stat code switches on Kind
// instead of probing for optional fields.
type TransactionKind string

const (
	KindExpense TransactionKind = "expense"
	KindIncome  TransactionKind = "income"
)

type RecurringFrequency string

const (
	FreqDaily   RecurringFrequency = "daily"
	FreqWeekly  RecurringFrequency = "weekly"
	FreqMonthly RecurringFrequency = "monthly"
	FreqYearly  RecurringFrequency = "yearly"
)

type Transaction struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	Kind          TransactionKind     `json:"kind"`
	Amount        decimal.Decimal     `json:"amount"`
	Category      string              `json:"category"`
	Subcategory   *string             `json:"subcategory,omitempty"`
	Date          time.Time           `json:"date"`
	PaymentMethod string              `json:"payment_method"`
	Description   *string             `json:"description,omitempty"`
	IsRecurring   bool                `json:"is_recurring"`
	Frequency     *RecurringFrequency `json:"recurring_frequency,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

var (
	ErrInvalidAmount = errors.New("amount must be > 0")
	ErrInvalidKind   = errors.New("kind must be expense or income")
)

func (t *Transaction) Validate() error {
	if t.Kind != KindExpense && t.Kind != KindIncome {
		return ErrInvalidKind
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.New("category required")
	}
	if strings.TrimSpace(t.PaymentMethod) == "" {
		return errors.New("payment method required")
	}
	if t.Date.IsZero() {
		return errors.New("date required")
	}
	if t.IsRecurring {
		if t.Frequency == nil {
			return errors.New("recurring frequency required")
		}
		switch *t.Frequency {
		case FreqDaily, FreqWeekly, FreqMonthly, FreqYearly:
		default:
			return errors.New("unknown recurring frequency")
		}
	}
	return nil
}
