package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
)

type goalsRepo struct{ pool *pgxpool.Pool }

const goalCols = `id, user_id, name, target, saved, target_date, created_at, updated_at`

func (r *goalsRepo) Create(ctx context.Context, g models.Goal) (models.Goal, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO goals (id, user_id, name, target, saved, target_date)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING `+goalCols,
		g.ID, g.UserID, g.Name, g.Target, g.Saved, g.TargetDate,
	).Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Saved, &g.TargetDate, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (r *goalsRepo) GetByID(ctx context.Context, id string) (models.Goal, error) {
	var g models.Goal
	err := r.pool.QueryRow(ctx, `SELECT `+goalCols+` FROM goals WHERE id=$1`, id).
		Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Saved, &g.TargetDate, &g.CreatedAt, &g.UpdatedAt)
	return g, mapErr(err)
}

func (r *goalsRepo) ListByUser(ctx context.Context, userID string) ([]models.Goal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+goalCols+` FROM goals WHERE user_id=$1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Saved, &g.TargetDate, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *goalsRepo) Update(ctx context.Context, g models.Goal) (models.Goal, error) {
	err := r.pool.QueryRow(ctx, `
		UPDATE goals
		   SET name=$3, target=$4, saved=$5, target_date=$6, updated_at=now()
		 WHERE id=$1 AND user_id=$2
		RETURNING `+goalCols,
		g.ID, g.UserID, g.Name, g.Target, g.Saved, g.TargetDate,
	).Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Saved, &g.TargetDate, &g.CreatedAt, &g.UpdatedAt)
	return g, mapErr(err)
}

func (r *goalsRepo) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
