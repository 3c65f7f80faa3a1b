package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/providers"
	"github.com/pickwise/pickwise-backend/internal/domain/repositories"
	"github.com/pickwise/pickwise-backend/pkg/config"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

// SessionService owns the question/answer session lifecycle: generation,
// retrieval, and answer collection.
type SessionService struct {
	questions providers.QuestionProvider
	repo      repositories.SessionRepository
	cfg       config.SessionConfig
}

// NewSessionService creates a new session service
func NewSessionService(
	questions providers.QuestionProvider,
	repo repositories.SessionRepository,
	cfg config.SessionConfig,
) *SessionService {
	return &SessionService{
		questions: questions,
		repo:      repo,
		cfg:       cfg,
	}
}

// Generate creates a new session for the query. Zero counts take the
// configured defaults; out-of-range counts are rejected before the engine is
// called. The session is persisted only when the generated questions pass
// schema validation.
func (s *SessionService) Generate(ctx context.Context, userID, query string, numQuestions, numAnswers int) (*entities.Session, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("query is required")
	}

	if numQuestions == 0 {
		numQuestions = s.cfg.QuestionsDef
	}
	if numAnswers == 0 {
		numAnswers = s.cfg.AnswersDef
	}
	if numQuestions < entities.MinQuestions || numQuestions > s.cfg.QuestionMax {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"numQuestions must be between %d and %d", entities.MinQuestions, s.cfg.QuestionMax))
	}
	if numAnswers < entities.MinAnswerChoices || numAnswers > s.cfg.AnswerMax {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"numAnswers must be between %d and %d", entities.MinAnswerChoices, s.cfg.AnswerMax))
	}

	questions, err := s.questions.GenerateQuestions(ctx, query, numQuestions, numAnswers)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entities.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Query:     query,
		Questions: questions,
		Answers:   map[string]string{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.cfg.TTL),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Get retrieves a session by ID.
func (s *SessionService) Get(ctx context.Context, id string) (*entities.Session, error) {
	return s.repo.GetByID(ctx, id)
}

// SubmitAnswers merges the submitted answers into the session. Keys that do
// not reference a session question are dropped, not rejected; a partial
// submission that contains some valid answers still makes progress. Repeated
// keys take the latest value.
func (s *SessionService) SubmitAnswers(ctx context.Context, id string, answers map[string]string) (*entities.Session, error) {
	if len(answers) == 0 {
		return nil, apperrors.NewValidationError("answers are required")
	}

	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]string, len(session.Answers)+len(answers))
	for k, v := range session.Answers {
		merged[k] = v
	}
	for questionID, answer := range answers {
		if !session.HasQuestion(questionID) {
			log.Debug().
				Str("session_id", id).
				Str("question_id", questionID).
				Msg("dropping answer for unknown question")
			continue
		}
		if strings.TrimSpace(answer) == "" {
			log.Debug().
				Str("session_id", id).
				Str("question_id", questionID).
				Msg("dropping empty answer")
			continue
		}
		merged[questionID] = answer
	}

	if err := s.repo.UpdateAnswers(ctx, id, merged); err != nil {
		return nil, err
	}

	session.Answers = merged
	session.UpdatedAt = time.Now()
	return session, nil
}

// Delete removes a session. Missing sessions are not an error.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
