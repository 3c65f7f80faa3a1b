package services

import (
	"context"
	"time"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/repositories"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

// ProfileService owns owner-scoped demographic profiles.
type ProfileService struct {
	repo repositories.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(repo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get retrieves the user's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*entities.UserProfile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Save validates and stores the user's profile, creating or replacing it.
func (s *ProfileService) Save(ctx context.Context, profile *entities.UserProfile) (*entities.UserProfile, error) {
	if err := profile.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
