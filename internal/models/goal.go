package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Goal struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Name       string          `json:"name"`
	Target     decimal.Decimal `json:"target"`
	Saved      decimal.Decimal `json:"saved"`
	TargetDate *time.Time      `json:"target_date,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("goal name required")
	}
	if !g.Target.IsPositive() {
		return errors.New("target must be > 0")
	}
	if g.Saved.IsNegative() {
		return errors.New("saved amount cannot be negative")
	}
	return nil
}

// Progress returns completion in percent, capped at 100.
func (g *Goal) Progress() float64 {
	if !g.Target.IsPositive() {
		return 0
	}
	pct, _ := g.Saved.Div(g.Target).Mul(decimal.NewFromInt(100)).Float64()
	if pct > 100 {
		return 100
	}
	return pct
}
