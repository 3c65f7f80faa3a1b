package repositories

import (
	"context"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
)

// ProfileRepository defines the interface for owner-scoped profile access.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entities.UserProfile, error)
	Upsert(ctx context.Context, profile *entities.UserProfile) error
}
