package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pickwise/pickwise-backend/internal/application/services"
	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/providers"
	"github.com/pickwise/pickwise-backend/internal/infrastructure/observability"
)

const (
	questionRateLimit  = 30
	questionRateWindow = time.Minute
)

// SessionHandler handles the question/answer session endpoints.
type SessionHandler struct {
	sessions *services.SessionService
	search   *services.SearchService
	tokens   *services.TokenService
	cache    providers.CacheProvider
	local    *localRateLimiter
	metrics  *observability.Metrics
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	sessions *services.SessionService,
	search *services.SearchService,
	tokens *services.TokenService,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		search:   search,
		tokens:   tokens,
		cache:    cache,
		local:    newLocalRateLimiter(),
		metrics:  metrics,
	}
}

type generateRequest struct {
	Query        string `json:"query"`
	NumQuestions int    `json:"numQuestions"`
	NumAnswers   int    `json:"numAnswers"`
}

type submitAnswersRequest struct {
	Answers map[string]string `json:"answers"`
}

// GenerateQuestions handles POST /api/questions/generate
func (h *SessionHandler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var payload generateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key := "questions:rate:" + clientIP(r)
	allowed, retryAfter := h.allowRequest(r.Context(), key)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	session, err := h.sessions.Generate(r.Context(), identity.UserID, payload.Query, payload.NumQuestions, payload.NumAnswers)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if h.metrics != nil {
		observability.RecordSessionCreated(r.Context(), h.metrics)
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"sessionId": session.ID,
		"questions": session.Questions,
		"expiresAt": session.ExpiresAt,
	})
}

// GetSession handles GET /api/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	session, ok := h.loadOwnedSession(w, r, identity)
	if !ok {
		return
	}

	respondWithJSON(w, http.StatusOK, sessionView(session))
}

// SubmitAnswers handles POST /api/sessions/{id}/answers.
//
// Valid answers are merged even when the submission is partial. Once every
// question is answered the search dispatches immediately; until then the
// response names the questions still missing.
func (h *SessionHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	if _, ok := h.loadOwnedSession(w, r, identity); !ok {
		return
	}

	var payload submitAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessions.SubmitAnswers(r.Context(), r.PathValue("id"), payload.Answers)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if !session.Complete() {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":     "pending",
			"unanswered": session.Unanswered(),
		})
		return
	}

	results, err := h.search.Dispatch(r.Context(), session, identity)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "complete",
		"results": results,
	})
}

// DispatchSearch handles POST /api/sessions/{id}/search. It re-runs the
// search for a completed session, typically after a failed dispatch.
func (h *SessionHandler) DispatchSearch(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	session, ok := h.loadOwnedSession(w, r, identity)
	if !ok {
		return
	}

	if !session.Complete() {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":      "session has unanswered questions",
			"unanswered": session.Unanswered(),
		})
		return
	}

	results, err := h.search.Dispatch(r.Context(), session, identity)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
	})
}

func (h *SessionHandler) authenticate(w http.ResponseWriter, r *http.Request) (*entities.UserIdentity, bool) {
	identity, err := h.tokens.Authenticate(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		respondWithAppError(w, err)
		return nil, false
	}
	return identity, true
}

// loadOwnedSession fetches the session and enforces ownership. A session
// owned by another user reads as not found so session IDs stay unguessable.
func (h *SessionHandler) loadOwnedSession(w http.ResponseWriter, r *http.Request, identity *entities.UserIdentity) (*entities.Session, bool) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "session ID is required")
		return nil, false
	}

	session, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return nil, false
	}

	if session.UserID != "" && session.UserID != identity.UserID {
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("session with id %s not found", id))
		return nil, false
	}

	return session, true
}

func (h *SessionHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, questionRateLimit, questionRateWindow)
	}

	state := rateLimitState{}
	if data, err := h.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= questionRateLimit {
		return false, questionRateWindow
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = h.cache.Set(ctx, key, data, int(questionRateWindow.Seconds()))
	return true, questionRateWindow
}

type rateLimitState struct {
	Count int `json:"count"`
}

func sessionView(session *entities.Session) map[string]interface{} {
	status := "pending"
	if session.Complete() {
		status = "complete"
	}
	return map[string]interface{}{
		"sessionId":  session.ID,
		"query":      session.Query,
		"questions":  session.Questions,
		"answers":    session.Answers,
		"status":     status,
		"unanswered": session.Unanswered(),
		"expiresAt":  session.ExpiresAt,
	}
}
