package services

import (
	"context"

	"github.com/wealthwise/wealthwise-backend/internal/cache"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
	"github.com/wealthwise/wealthwise-backend/internal/worker"
)

// AdminService backs the admin panel: user listing/removal and the
// shared category list.
type AdminService struct {
	users      repo.Users
	categories repo.Categories
	audit      repo.AuditLogs
	store      *cache.Store
	wp         *worker.Pool
}

func NewAdminService(users repo.Users, categories repo.Categories, audit repo.AuditLogs, store *cache.Store, wp *worker.Pool) *AdminService {
	return &AdminService{users: users, categories: categories, audit: audit, store: store, wp: wp}
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

func (s *AdminService) DeleteUser(ctx context.Context, id, adminID string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	// drop whatever the deleted user had cached
	s.store.Clear(id)
	s.logAction("user", id, adminID, "deleted")
	return nil
}

func (s *AdminService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *AdminService) CreateCategory(ctx context.Context, c models.Category, adminID string) (models.Category, error) {
	if err := c.Validate(); err != nil {
		return models.Category{}, err
	}
	created, err := s.categories.Create(ctx, c)
	if err != nil {
		return models.Category{}, err
	}
	s.logAction("category", created.ID, adminID, "created")
	return created, nil
}

func (s *AdminService) DeleteCategory(ctx context.Context, id, adminID string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logAction("category", id, adminID, "deleted")
	return nil
}

func (s *AdminService) logAction(entityType, entityID, adminID, action string) {
	s.wp.Submit(func() {
		eid, uid := entityID, adminID
		_ = s.audit.Create(context.Background(), models.AuditLog{
			EntityType: entityType,
			EntityID:   &eid,
			UserID:     &uid,
			Action:     action,
		})
	})
}
