package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/providers"
	"github.com/pickwise/pickwise-backend/internal/domain/repositories"
	"github.com/pickwise/pickwise-backend/internal/infrastructure/observability"
)

// SearchService orchestrates a search dispatch: it assembles the
// personalized request from a completed session, calls the engine once, and
// records the attempt in the owner's history. A failed dispatch keeps the
// session so the user can retry; a successful one consumes it.
type SearchService struct {
	search   providers.SearchProvider
	sessions repositories.SessionRepository
	profiles repositories.ProfileRepository
	history  *HistoryService
	metrics  *observability.Metrics
}

// NewSearchService creates a new search service
func NewSearchService(
	search providers.SearchProvider,
	sessions repositories.SessionRepository,
	profiles repositories.ProfileRepository,
	history *HistoryService,
	metrics *observability.Metrics,
) *SearchService {
	return &SearchService{
		search:   search,
		sessions: sessions,
		profiles: profiles,
		history:  history,
		metrics:  metrics,
	}
}

// Dispatch runs one search for the session on behalf of identity.
//
// History is written for verified identities only: an anonymous or degraded
// identity has no owner to key retention on. History and session cleanup are
// best-effort; their failures are logged and never mask the search outcome.
func (s *SearchService) Dispatch(ctx context.Context, session *entities.Session, identity *entities.UserIdentity) ([]entities.SearchResult, error) {
	req := &entities.SearchRequest{
		Query:     session.Query,
		Answers:   session.Answers,
		Questions: session.Questions,
	}
	if s.verified(identity) {
		req.UserID = identity.UserID
		req.UserProfile = s.lookupProfile(ctx, identity.UserID).SearchProfile()
	}

	results, searchErr := s.search.Search(ctx, req)

	if s.metrics != nil {
		observability.RecordSearchDispatched(ctx, s.metrics, searchErr == nil)
	}

	if s.verified(identity) {
		entry := &entities.SearchHistoryEntry{
			UserID:    identity.UserID,
			Query:     session.Query,
			Answers:   session.Answers,
			Questions: session.Questions,
			Results:   results,
			CreatedAt: time.Now(),
		}
		if searchErr != nil {
			entry.Results = []entities.SearchResult{entities.FailurePlaceholder(searchErr.Error())}
		}

		// The attempt is recorded even if the client goes away mid-dispatch.
		historyCtx := context.WithoutCancel(ctx)
		if err := s.history.Record(historyCtx, entry); err != nil {
			log.Error().Err(err).
				Str("session_id", session.ID).
				Str("user_id", identity.UserID).
				Msg("failed to record search history")
		}
	}

	if searchErr != nil {
		return nil, searchErr
	}

	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		log.Warn().Err(err).
			Str("session_id", session.ID).
			Msg("failed to delete consumed session")
	}

	return results, nil
}

func (s *SearchService) verified(identity *entities.UserIdentity) bool {
	return identity != nil && !identity.Anonymous() && !identity.Degraded
}

// lookupProfile fetches the user's profile for request enrichment. A missing
// or unreadable profile is not an error; the search goes out without it.
func (s *SearchService) lookupProfile(ctx context.Context, userID string) *entities.UserProfile {
	if s.profiles == nil {
		return nil
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil
	}
	return profile
}
