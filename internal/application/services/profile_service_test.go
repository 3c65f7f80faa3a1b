package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pickwise/pickwise-backend/internal/application/services"
	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

func TestProfileService_Save(t *testing.T) {
	t.Run("stores a valid profile with timestamps", func(t *testing.T) {
		repo := &mockProfileRepo{}
		service := services.NewProfileService(repo)

		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *entities.UserProfile) bool {
			return p.UserID == "user-1" && !p.CreatedAt.IsZero() && !p.UpdatedAt.IsZero()
		})).Return(nil)

		profile, err := service.Save(context.Background(), &entities.UserProfile{
			UserID:    "user-1",
			Age:       34,
			Gender:    entities.GenderFemale,
			LivesInUS: true,
		})
		require.NoError(t, err)
		assert.False(t, profile.UpdatedAt.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("rejects out-of-range age", func(t *testing.T) {
		repo := &mockProfileRepo{}
		service := services.NewProfileService(repo)

		_, err := service.Save(context.Background(), &entities.UserProfile{
			UserID: "user-1",
			Age:    0,
			Gender: entities.GenderMale,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		repo.AssertNotCalled(t, "Upsert")
	})

	t.Run("rejects unknown gender", func(t *testing.T) {
		repo := &mockProfileRepo{}
		service := services.NewProfileService(repo)

		_, err := service.Save(context.Background(), &entities.UserProfile{
			UserID: "user-1",
			Age:    30,
			Gender: "unknown",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestProfileService_Get(t *testing.T) {
	repo := &mockProfileRepo{}
	service := services.NewProfileService(repo)

	repo.On("GetByUserID", mock.Anything, "user-1").
		Return(&entities.UserProfile{UserID: "user-1", Age: 34, Gender: entities.GenderOther}, nil)

	profile, err := service.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 34, profile.Age)
}
