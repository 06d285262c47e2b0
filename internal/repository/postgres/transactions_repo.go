package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

const txnCols = `id, user_id, kind, amount, category, subcategory, date, payment_method,
       description, is_recurring, recurring_frequency, created_at, updated_at`

func (r *transactionsRepo) scanRow(row interface{ Scan(...any) error }) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Kind, &t.Amount, &t.Category, &t.Subcategory,
		&t.Date, &t.PaymentMethod, &t.Description, &t.IsRecurring, &t.Frequency,
		&t.CreatedAt, &t.UpdatedAt)
	return t, mapErr(err)
}

func (r *transactionsRepo) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (id, user_id, kind, amount, category, subcategory, date,
		                          payment_method, description, is_recurring, recurring_frequency)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING `+txnCols,
		t.ID, t.UserID, t.Kind, t.Amount, t.Category, t.Subcategory, t.Date,
		t.PaymentMethod, t.Description, t.IsRecurring, t.Frequency,
	)
	return r.scanRow(row)
}

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+txnCols+` FROM transactions WHERE id=$1`, id)
	return r.scanRow(row)
}

func (r *transactionsRepo) Update(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE transactions
		   SET amount=$3, category=$4, subcategory=$5, date=$6, payment_method=$7,
		       description=$8, is_recurring=$9, recurring_frequency=$10, updated_at=now()
		 WHERE id=$1 AND user_id=$2
		RETURNING `+txnCols,
		t.ID, t.UserID, t.Amount, t.Category, t.Subcategory, t.Date,
		t.PaymentMethod, t.Description, t.IsRecurring, t.Frequency,
	)
	return r.scanRow(row)
}

func (r *transactionsRepo) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *transactionsRepo) ListByUser(ctx context.Context, userID string, kind *models.TransactionKind, limit, offset int) ([]models.Transaction, error) {
	q := `SELECT ` + txnCols + ` FROM transactions WHERE user_id=$1`
	args := []any{userID}
	if kind != nil {
		q += ` AND kind=$2`
		args = append(args, *kind)
	}
	q += ` ORDER BY date DESC, created_at DESC`
	args = append(args, limit, offset)
	if kind != nil {
		q += ` LIMIT $3 OFFSET $4`
	} else {
		q += ` LIMIT $2 OFFSET $3`
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		t, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *transactionsRepo) SumAmountInRange(ctx context.Context, userID string, kind models.TransactionKind, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		  FROM transactions
		 WHERE user_id=$1 AND kind=$2 AND date >= $3 AND date <= $4`,
		userID, kind, from, to,
	).Scan(&sum)
	return sum, err
}

func (r *transactionsRepo) SpendByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, COALESCE(SUM(amount), 0)
		  FROM transactions
		 WHERE user_id=$1 AND kind='expense' AND date >= $2 AND date <= $3
		 GROUP BY category`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var cat string
		var sum decimal.Decimal
		if err := rows.Scan(&cat, &sum); err != nil {
			return nil, err
		}
		out[cat] = sum
	}
	return out, rows.Err()
}
