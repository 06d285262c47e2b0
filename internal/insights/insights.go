// Package insights turns profile and goal figures into the canned
// advice lines shown on the dashboard. Plain threshold checks; there
// is no model call behind the "AI" label.
package insights

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/models"
)

type Insight struct {
	Kind     string  `json:"kind"`
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	Icon     string  `json:"icon"`
	Severity string  `json:"severity"` // info | warn | good
	Progress float64 `json:"progress,omitempty"`
}

// Income-per-household-member bands, in rupees per month.
var (
	tightBand       = decimal.NewFromInt(15000)
	comfortableBand = decimal.NewFromInt(50000)
)

// Debt above this share of income triggers the warning.
var debtRatioLimit = decimal.NewFromFloat(0.40)

// goalIcons maps substrings of goal names to display icons; unmatched
// goals get the default.
var goalIcons = []struct {
	match string
	icon  string
}{
	{"emergency", "shield"},
	{"house", "home"},
	{"home", "home"},
	{"car", "car"},
	{"vacation", "plane"},
	{"travel", "plane"},
	{"wedding", "rings"},
	{"education", "book"},
	{"retirement", "sunset"},
}

const defaultGoalIcon = "target"

// ForUser evaluates every rule against the profile and goals.
func ForUser(p *models.Profile, goals []models.Goal) []Insight {
	var out []Insight
	if p != nil {
		if ins, ok := incomeInsight(p); ok {
			out = append(out, ins)
		}
		if ins, ok := debtInsight(p); ok {
			out = append(out, ins)
		}
	}
	for _, g := range goals {
		out = append(out, goalInsight(g))
	}
	return out
}

func incomeInsight(p *models.Profile) (Insight, bool) {
	if p.HouseholdSize < 1 || !p.MonthlyIncome.IsPositive() {
		return Insight{}, false
	}
	perMember := p.MonthlyIncome.Div(decimal.NewFromInt(int64(p.HouseholdSize)))

	switch {
	case perMember.LessThan(tightBand):
		return Insight{
			Kind:     "income_band",
			Title:    "Budget is stretched",
			Body:     "Income per household member is on the tighter side. Tracking every expense category will help you find room to save.",
			Icon:     "alert",
			Severity: "warn",
		}, true
	case perMember.LessThan(comfortableBand):
		return Insight{
			Kind:     "income_band",
			Title:    "Steady footing",
			Body:     "Your household income covers the essentials. Setting a fixed savings target each month would build a cushion.",
			Icon:     "balance",
			Severity: "info",
		}, true
	default:
		return Insight{
			Kind:     "income_band",
			Title:    "Room to grow",
			Body:     "Income per household member is comfortable. Consider directing the surplus toward long-term goals.",
			Icon:     "trend-up",
			Severity: "good",
		}, true
	}
}

func debtInsight(p *models.Profile) (Insight, bool) {
	if !p.MonthlyIncome.IsPositive() || !p.MonthlyDebt.IsPositive() {
		return Insight{}, false
	}
	ratio := p.MonthlyDebt.Div(p.MonthlyIncome)
	if ratio.LessThan(debtRatioLimit) {
		return Insight{
			Kind:     "debt_ratio",
			Title:    "Debt under control",
			Body:     "Your monthly debt load sits below the recommended ceiling. Keep repayments steady.",
			Icon:     "check",
			Severity: "good",
		}, true
	}
	return Insight{
		Kind:     "debt_ratio",
		Title:    "High debt load",
		Body:     "Debt repayments take up a large share of your income. Prioritising the costliest loan first usually frees up cash fastest.",
		Icon:     "alert",
		Severity: "warn",
	}, true
}

func goalInsight(g models.Goal) Insight {
	return Insight{
		Kind:     "goal",
		Title:    g.Name,
		Body:     "Saved " + g.Saved.StringFixed(0) + " of " + g.Target.StringFixed(0) + ".",
		Icon:     IconForGoal(g.Name),
		Severity: "info",
		Progress: g.Progress(),
	}
}

// IconForGoal picks a display icon by substring match on the goal
// name, first match wins.
func IconForGoal(name string) string {
	lower := strings.ToLower(name)
	for _, gi := range goalIcons {
		if strings.Contains(lower, gi.match) {
			return gi.icon
		}
	}
	return defaultGoalIcon
}
