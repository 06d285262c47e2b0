package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wealthwise/wealthwise-backend/internal/models"
)

type profilesRepo struct{ pool *pgxpool.Pool }

func (r *profilesRepo) Get(ctx context.Context, userID string) (models.Profile, error) {
	var p models.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, household_size, monthly_income, monthly_debt, savings_target, created_at, updated_at
		  FROM profiles WHERE user_id=$1`, userID,
	).Scan(&p.UserID, &p.HouseholdSize, &p.MonthlyIncome, &p.MonthlyDebt, &p.SavingsTarget, &p.CreatedAt, &p.UpdatedAt)
	return p, mapErr(err)
}

// Upsert replaces the whole record; the questionnaire is saved
// wholesale, never field by field.
func (r *profilesRepo) Upsert(ctx context.Context, p models.Profile) (models.Profile, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, household_size, monthly_income, monthly_debt, savings_target)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id) DO UPDATE
		   SET household_size=EXCLUDED.household_size,
		       monthly_income=EXCLUDED.monthly_income,
		       monthly_debt=EXCLUDED.monthly_debt,
		       savings_target=EXCLUDED.savings_target,
		       updated_at=now()
		RETURNING user_id, household_size, monthly_income, monthly_debt, savings_target, created_at, updated_at`,
		p.UserID, p.HouseholdSize, p.MonthlyIncome, p.MonthlyDebt, p.SavingsTarget,
	).Scan(&p.UserID, &p.HouseholdSize, &p.MonthlyIncome, &p.MonthlyDebt, &p.SavingsTarget, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
