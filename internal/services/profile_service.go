package services

import (
	"context"

	"github.com/wealthwise/wealthwise-backend/internal/cache"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
	"github.com/wealthwise/wealthwise-backend/internal/restore"
)

type ProfileService struct {
	profiles repo.Profiles
	users    repo.Users
	store    *cache.Store
}

func NewProfileService(profiles repo.Profiles, users repo.Users, store *cache.Store) *ProfileService {
	return &ProfileService{profiles: profiles, users: users, store: store}
}

// Get reads through the cache: a fresh entry is served as-is, an
// expired one is evicted and the database re-read.
func (s *ProfileService) Get(ctx context.Context, userID string) (models.Profile, error) {
	key := cache.Key(restore.ResourceProfile, userID)
	if v, ok := s.store.Get(key); ok {
		if p, ok := v.(*models.Profile); ok && p != nil {
			return *p, nil
		}
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	s.store.Set(key, &p)
	return p, nil
}

// Save upserts the questionnaire answers wholesale and flips the
// user's onboarded flag once the answers are complete.
func (s *ProfileService) Save(ctx context.Context, p models.Profile) (models.Profile, error) {
	if err := p.Validate(); err != nil {
		return models.Profile{}, err
	}
	saved, err := s.profiles.Upsert(ctx, p)
	if err != nil {
		return models.Profile{}, err
	}
	s.store.Delete(cache.Key(restore.ResourceProfile, p.UserID))

	if saved.Complete() {
		if err := s.users.SetOnboarded(ctx, p.UserID, true); err != nil {
			return models.Profile{}, err
		}
	}
	return saved, nil
}
