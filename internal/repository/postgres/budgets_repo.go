package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/models"
)

type budgetsRepo struct{ pool *pgxpool.Pool }

func (r *budgetsRepo) Get(ctx context.Context, userID string, year, month int) (models.Budget, error) {
	var b models.Budget
	var cats []byte
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, year, month, overall_monthly, categories, updated_at
		  FROM budgets WHERE user_id=$1 AND year=$2 AND month=$3`,
		userID, year, month,
	).Scan(&b.UserID, &b.Year, &b.Month, &b.OverallMonthly, &cats, &b.UpdatedAt)
	if err != nil {
		return models.Budget{}, mapErr(err)
	}
	if err := json.Unmarshal(cats, &b.Categories); err != nil {
		return models.Budget{}, err
	}
	return b, nil
}

// Upsert writes the record wholesale. Category allocations are stored
// as a jsonb map keyed by category name.
func (r *budgetsRepo) Upsert(ctx context.Context, b models.Budget) (models.Budget, error) {
	if b.Categories == nil {
		b.Categories = map[string]decimal.Decimal{}
	}
	cats, err := json.Marshal(b.Categories)
	if err != nil {
		return models.Budget{}, err
	}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO budgets (user_id, year, month, overall_monthly, categories)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id, year, month) DO UPDATE
		   SET overall_monthly=EXCLUDED.overall_monthly,
		       categories=EXCLUDED.categories,
		       updated_at=now()
		RETURNING updated_at`,
		b.UserID, b.Year, b.Month, b.OverallMonthly, cats,
	).Scan(&b.UpdatedAt)
	return b, err
}
