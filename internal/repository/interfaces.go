package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/models"
)

// ErrNotFound is returned by lookups when no row matches. The postgres
// implementations translate pgx.ErrNoRows into this.
var ErrNotFound = errors.New("not found")

type Users interface {
	Create(ctx context.Context, username, email, passwordHash, role string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	SetOnboarded(ctx context.Context, id string, done bool) error
	Delete(ctx context.Context, id string) error
}

type Profiles interface {
	Get(ctx context.Context, userID string) (models.Profile, error)
	Upsert(ctx context.Context, p models.Profile) (models.Profile, error)
}

type Transactions interface {
	Create(ctx context.Context, t models.Transaction) (models.Transaction, error)
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	Update(ctx context.Context, t models.Transaction) (models.Transaction, error)
	Delete(ctx context.Context, id, userID string) error
	ListByUser(ctx context.Context, userID string, kind *models.TransactionKind, limit, offset int) ([]models.Transaction, error)

	// SumAmountInRange sums amounts of one kind for the user where
	// date falls in [from, to] inclusive. The live balance watcher
	// issues this twice per recompute.
	SumAmountInRange(ctx context.Context, userID string, kind models.TransactionKind, from, to time.Time) (decimal.Decimal, error)

	// SpendByCategory aggregates expense amounts per category over the
	// same inclusive range.
	SpendByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error)
}

type Budgets interface {
	Get(ctx context.Context, userID string, year, month int) (models.Budget, error)
	Upsert(ctx context.Context, b models.Budget) (models.Budget, error)
}

type Goals interface {
	Create(ctx context.Context, g models.Goal) (models.Goal, error)
	GetByID(ctx context.Context, id string) (models.Goal, error)
	ListByUser(ctx context.Context, userID string) ([]models.Goal, error)
	Update(ctx context.Context, g models.Goal) (models.Goal, error)
	Delete(ctx context.Context, id, userID string) error
}

type Categories interface {
	Create(ctx context.Context, c models.Category) (models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Delete(ctx context.Context, id string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
