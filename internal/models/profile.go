package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Profile holds the onboarding questionnaire answers. One record per
// user, upserted wholesale on every save.
type Profile struct {
	UserID        string          `json:"user_id"`
	HouseholdSize int             `json:"household_size"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	MonthlyDebt   decimal.Decimal `json:"monthly_debt"`
	SavingsTarget decimal.Decimal `json:"savings_target"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (p *Profile) Validate() error {
	if p.HouseholdSize < 1 {
		return errors.New("household size must be >= 1")
	}
	if p.MonthlyIncome.IsNegative() {
		return errors.New("monthly income cannot be negative")
	}
	if p.MonthlyDebt.IsNegative() {
		return errors.New("monthly debt cannot be negative")
	}
	if p.SavingsTarget.IsNegative() {
		return errors.New("savings target cannot be negative")
	}
	return nil
}

// Complete reports whether the record carries enough answers to skip
// onboarding. A zero income with a non-trivial household is treated as
// an unfinished questionnaire.
func (p *Profile) Complete() bool {
	return p.UserID != "" && p.HouseholdSize >= 1 && p.MonthlyIncome.IsPositive()
}
