package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/repositories"
	"github.com/pickwise/pickwise-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

// ProfileAdapter implements the ProfileRepository interface
type ProfileAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProfileAdapter creates a new user profile adapter
func NewProfileAdapter(client *postgres.Client) repositories.ProfileRepository {
	return &ProfileAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByUserID retrieves a user's profile
func (a *ProfileAdapter) GetByUserID(ctx context.Context, userID string) (*entities.UserProfile, error) {
	query, args, err := a.db.Select(
		"user_id", "age", "gender", "lives_in_us", "created_at", "updated_at",
	).From("user_profiles").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build profile query", err)
	}

	profile := &entities.UserProfile{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&profile.UserID,
		&profile.Age,
		&profile.Gender,
		&profile.LivesInUS,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("profile for user %s not found", userID))
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to get profile", err)
	}

	return profile, nil
}

// Upsert creates the profile or replaces its attributes if one exists.
func (a *ProfileAdapter) Upsert(ctx context.Context, profile *entities.UserProfile) error {
	record := goqu.Record{
		"user_id":     profile.UserID,
		"age":         profile.Age,
		"gender":      profile.Gender,
		"lives_in_us": profile.LivesInUS,
		"created_at":  profile.CreatedAt,
		"updated_at":  profile.UpdatedAt,
	}

	update := goqu.Record{
		"age":         profile.Age,
		"gender":      profile.Gender,
		"lives_in_us": profile.LivesInUS,
		"updated_at":  profile.UpdatedAt,
	}

	query, args, err := a.db.Insert("user_profiles").
		Rows(record).
		OnConflict(goqu.DoUpdate("user_id", update)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build profile upsert", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewStorageError("failed to upsert profile", err)
	}

	return nil
}
