package services

import (
	"context"

	"github.com/wealthwise/wealthwise-backend/internal/cache"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	"github.com/wealthwise/wealthwise-backend/internal/notify"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
	"github.com/wealthwise/wealthwise-backend/internal/restore"
	"github.com/wealthwise/wealthwise-backend/internal/worker"
)

// TransactionService owns expense/income writes: validate, persist,
// publish the change event, audit off the request path, and drop the
// user's cached list so the next restore re-reads.
type TransactionService struct {
	trx   repo.Transactions
	audit repo.AuditLogs
	hub   *notify.Hub
	store *cache.Store
	wp    *worker.Pool
}

func NewTransactionService(trx repo.Transactions, audit repo.AuditLogs, hub *notify.Hub, store *cache.Store, wp *worker.Pool) *TransactionService {
	return &TransactionService{trx: trx, audit: audit, hub: hub, store: store, wp: wp}
}

func (s *TransactionService) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	if err := t.Validate(); err != nil {
		return models.Transaction{}, err
	}
	created, err := s.trx.Create(ctx, t)
	if err != nil {
		return models.Transaction{}, err
	}
	s.afterWrite(created.UserID, created.ID, notify.EventInsert, "created")
	return created, nil
}

func (s *TransactionService) Update(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	if err := t.Validate(); err != nil {
		return models.Transaction{}, err
	}
	updated, err := s.trx.Update(ctx, t)
	if err != nil {
		return models.Transaction{}, err
	}
	s.afterWrite(updated.UserID, updated.ID, notify.EventUpdate, "updated")
	return updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, id, userID string) error {
	if err := s.trx.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.afterWrite(userID, id, notify.EventDelete, "deleted")
	return nil
}

// Get enforces ownership: a transaction is visible only to its owner.
func (s *TransactionService) Get(ctx context.Context, id, userID string) (models.Transaction, error) {
	t, err := s.trx.GetByID(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}
	if t.UserID != userID {
		return models.Transaction{}, repo.ErrNotFound
	}
	return t, nil
}

func (s *TransactionService) List(ctx context.Context, userID string, kind *models.TransactionKind, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.trx.ListByUser(ctx, userID, kind, limit, offset)
}

func (s *TransactionService) afterWrite(userID, entityID string, typ notify.EventType, action string) {
	s.store.Delete(cache.Key(restore.ResourceTransactions, userID))
	s.hub.Publish(notify.Event{Table: "transactions", Type: typ, UserID: userID, EntityID: entityID})
	s.wp.Submit(func() {
		eid, uid := entityID, userID
		_ = s.audit.Create(context.Background(), models.AuditLog{
			EntityType: "transaction",
			EntityID:   &eid,
			UserID:     &uid,
			Action:     action,
		})
	})
}
