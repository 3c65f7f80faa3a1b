package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pickwise/pickwise-backend/internal/application/services"
	"github.com/pickwise/pickwise-backend/internal/domain/entities"
)

// ProfileHandler handles user profile endpoints. Profiles belong to verified
// users only; anonymous and degraded identities have nowhere to store one.
type ProfileHandler struct {
	profiles *services.ProfileService
	tokens   *services.TokenService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *services.ProfileService, tokens *services.TokenService) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		tokens:   tokens,
	}
}

type profileRequest struct {
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	LivesInUS bool   `json:"lives_in_us"`
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.verifiedIdentity(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.Get(r.Context(), identity.UserID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// SaveProfile handles PUT /api/profile
func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.verifiedIdentity(w, r)
	if !ok {
		return
	}

	var payload profileRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profiles.Save(r.Context(), &entities.UserProfile{
		UserID:    identity.UserID,
		Age:       payload.Age,
		Gender:    payload.Gender,
		LivesInUS: payload.LivesInUS,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) verifiedIdentity(w http.ResponseWriter, r *http.Request) (*entities.UserIdentity, bool) {
	identity, err := h.tokens.Authenticate(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		respondWithAppError(w, err)
		return nil, false
	}
	if identity.Anonymous() {
		respondWithError(w, http.StatusUnauthorized, "profile requires a verified identity")
		return nil, false
	}
	return identity, true
}
