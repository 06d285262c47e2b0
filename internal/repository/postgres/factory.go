package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
)

type Repositories struct {
	Users        repo.Users
	Profiles     repo.Profiles
	Transactions repo.Transactions
	Budgets      repo.Budgets
	Goals        repo.Goals
	Categories   repo.Categories
	AuditLogs    repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:        &usersRepo{pool},
		Profiles:     &profilesRepo{pool},
		Transactions: &transactionsRepo{pool},
		Budgets:      &budgetsRepo{pool},
		Goals:        &goalsRepo{pool},
		Categories:   &categoriesRepo{pool},
		AuditLogs:    &auditLogsRepo{pool},
	}
}

func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	return err
}
