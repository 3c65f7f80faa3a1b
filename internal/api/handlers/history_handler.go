package handlers

import (
	"net/http"
	"strconv"

	"github.com/pickwise/pickwise-backend/internal/application/services"
	"github.com/pickwise/pickwise-backend/internal/domain/entities"
)

// HistoryHandler handles search history retrieval.
type HistoryHandler struct {
	history *services.HistoryService
	tokens  *services.TokenService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history *services.HistoryService, tokens *services.TokenService) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		tokens:  tokens,
	}
}

// GetHistory handles GET /api/history. An identity without a verified user
// has no history to read, so it gets an empty list rather than an error.
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	identity, err := h.tokens.Authenticate(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if identity.Anonymous() {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"history":  []interface{}{},
			"count":    0,
			"degraded": identity.Degraded,
		})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.history.List(r.Context(), identity.UserID, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if entries == nil {
		entries = []*entities.SearchHistoryEntry{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"history": entries,
		"count":   len(entries),
	})
}
