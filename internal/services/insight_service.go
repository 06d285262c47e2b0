package services

import (
	"context"
	"errors"

	"github.com/wealthwise/wealthwise-backend/internal/insights"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
)

type InsightService struct {
	profiles repo.Profiles
	goals    repo.Goals
}

func NewInsightService(profiles repo.Profiles, goals repo.Goals) *InsightService {
	return &InsightService{profiles: profiles, goals: goals}
}

// ForUser loads the inputs and runs the rule set. A missing profile
// just means fewer insights, not a failure.
func (s *InsightService) ForUser(ctx context.Context, userID string) ([]insights.Insight, error) {
	var profile *models.Profile
	p, err := s.profiles.Get(ctx, userID)
	switch {
	case err == nil:
		profile = &p
	case errors.Is(err, repo.ErrNotFound):
	default:
		return nil, err
	}

	goals, err := s.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return insights.ForUser(profile, goals), nil
}
