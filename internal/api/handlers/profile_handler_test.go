package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickwise/pickwise-backend/internal/application/services"
	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/providers"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

func newProfileHandler(repo *fakeProfileRepo) *ProfileHandler {
	verifier := &fakeIdentityProvider{
		verify: func(ctx context.Context, token string) (*entities.UserIdentity, error) {
			switch token {
			case "good-token":
				return &entities.UserIdentity{UserID: "user-1"}, nil
			case "degraded-token":
				return nil, providers.ErrIdentityUnavailable
			default:
				return nil, apperrors.NewInvalidCredentialError("credential rejected")
			}
		},
	}
	return NewProfileHandler(services.NewProfileService(repo), services.NewTokenService(verifier))
}

func TestProfileHandler_SaveProfile(t *testing.T) {
	t.Run("stores a valid profile", func(t *testing.T) {
		repo := newFakeProfileRepo()
		handler := newProfileHandler(repo)

		rec := doRequest(handler.SaveProfile, http.MethodPut, "/api/profile", "good-token",
			map[string]interface{}{"age": 34, "gender": "Female", "lives_in_us": true}, "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, repo.profiles, "user-1")
		assert.Equal(t, 34, repo.profiles["user-1"].Age)
	})

	t.Run("rejects invalid attributes", func(t *testing.T) {
		handler := newProfileHandler(newFakeProfileRepo())

		rec := doRequest(handler.SaveProfile, http.MethodPut, "/api/profile", "good-token",
			map[string]interface{}{"age": 200, "gender": "Female"}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("degraded identity cannot store a profile", func(t *testing.T) {
		handler := newProfileHandler(newFakeProfileRepo())

		rec := doRequest(handler.SaveProfile, http.MethodPut, "/api/profile", "degraded-token",
			map[string]interface{}{"age": 34, "gender": "Female"}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestProfileHandler_GetProfile(t *testing.T) {
	t.Run("returns the stored profile", func(t *testing.T) {
		repo := newFakeProfileRepo()
		repo.profiles["user-1"] = &entities.UserProfile{UserID: "user-1", Age: 34, Gender: entities.GenderFemale}
		handler := newProfileHandler(repo)

		rec := doRequest(handler.GetProfile, http.MethodGet, "/api/profile", "good-token", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.EqualValues(t, 34, resp["age"])
	})

	t.Run("missing profile is not found", func(t *testing.T) {
		handler := newProfileHandler(newFakeProfileRepo())

		rec := doRequest(handler.GetProfile, http.MethodGet, "/api/profile", "good-token", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
