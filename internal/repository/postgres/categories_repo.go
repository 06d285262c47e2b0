package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
)

type categoriesRepo struct{ pool *pgxpool.Pool }

func (r *categoriesRepo) Create(ctx context.Context, c models.Category) (models.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, name, kind) VALUES ($1,$2,$3)
		RETURNING id, name, kind, created_at`,
		c.ID, c.Name, c.Kind,
	).Scan(&c.ID, &c.Name, &c.Kind, &c.CreatedAt)
	return c, err
}

func (r *categoriesRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, kind, created_at FROM categories ORDER BY kind, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoriesRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
