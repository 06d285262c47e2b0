package services

import (
	"context"

	"github.com/wealthwise/wealthwise-backend/internal/cache"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
	"github.com/wealthwise/wealthwise-backend/internal/restore"
)

type GoalService struct {
	goals repo.Goals
	store *cache.Store
}

func NewGoalService(goals repo.Goals, store *cache.Store) *GoalService {
	return &GoalService{goals: goals, store: store}
}

func (s *GoalService) Create(ctx context.Context, g models.Goal) (models.Goal, error) {
	if err := g.Validate(); err != nil {
		return models.Goal{}, err
	}
	created, err := s.goals.Create(ctx, g)
	if err != nil {
		return models.Goal{}, err
	}
	s.invalidate(g.UserID)
	return created, nil
}

func (s *GoalService) Update(ctx context.Context, g models.Goal) (models.Goal, error) {
	if err := g.Validate(); err != nil {
		return models.Goal{}, err
	}
	updated, err := s.goals.Update(ctx, g)
	if err != nil {
		return models.Goal{}, err
	}
	s.invalidate(g.UserID)
	return updated, nil
}

func (s *GoalService) Delete(ctx context.Context, id, userID string) error {
	if err := s.goals.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

func (s *GoalService) List(ctx context.Context, userID string) ([]models.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

func (s *GoalService) invalidate(userID string) {
	s.store.Delete(cache.Key(restore.ResourceGoals, userID))
}
