package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pickwise/pickwise-backend/internal/application/services"
	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/pkg/config"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		TTL:          24 * time.Hour,
		QuestionMax:  entities.MaxQuestions,
		AnswerMax:    entities.MaxAnswerChoices,
		QuestionsDef: 3,
		AnswersDef:   3,
	}
}

func sampleQuestions() []entities.Question {
	return []entities.Question{
		{ID: "q1", Text: "What is your budget range?", Answers: []string{"Under $50", "$50-$150", "Over $150"}},
		{ID: "q2", Text: "How often will you use it?", Answers: []string{"Daily", "Weekly", "Rarely"}},
		{ID: "q3", Text: "What matters most to you?", Answers: []string{"Price", "Quality", "Brand"}},
	}
}

func TestSessionService_Generate(t *testing.T) {
	t.Run("creates a session with defaults applied", func(t *testing.T) {
		provider := &mockQuestionProvider{}
		repo := &mockSessionRepo{}
		service := services.NewSessionService(provider, repo, sessionConfig())

		provider.On("GenerateQuestions", mock.Anything, "wireless headphones", 3, 3).
			Return(sampleQuestions(), nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Session")).Return(nil)

		session, err := service.Generate(context.Background(), "user-1", "wireless headphones", 0, 0)
		require.NoError(t, err)
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, "user-1", session.UserID)
		assert.Len(t, session.Questions, 3)
		assert.Empty(t, session.Answers)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt, time.Minute)
		provider.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("rejects blank query before calling the engine", func(t *testing.T) {
		provider := &mockQuestionProvider{}
		repo := &mockSessionRepo{}
		service := services.NewSessionService(provider, repo, sessionConfig())

		_, err := service.Generate(context.Background(), "user-1", "   ", 0, 0)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		provider.AssertNotCalled(t, "GenerateQuestions")
	})

	t.Run("rejects out-of-range counts", func(t *testing.T) {
		provider := &mockQuestionProvider{}
		repo := &mockSessionRepo{}
		service := services.NewSessionService(provider, repo, sessionConfig())

		_, err := service.Generate(context.Background(), "user-1", "headphones", 11, 3)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

		_, err = service.Generate(context.Background(), "user-1", "headphones", 3, 7)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		provider.AssertNotCalled(t, "GenerateQuestions")
	})

	t.Run("enforces the configured maximums", func(t *testing.T) {
		provider := &mockQuestionProvider{}
		repo := &mockSessionRepo{}
		cfg := sessionConfig()
		cfg.QuestionMax = 5
		cfg.AnswerMax = 4
		service := services.NewSessionService(provider, repo, cfg)

		_, err := service.Generate(context.Background(), "user-1", "headphones", 6, 3)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Contains(t, err.Error(), "between 1 and 5")

		_, err = service.Generate(context.Background(), "user-1", "headphones", 3, 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "between 2 and 4")
		provider.AssertNotCalled(t, "GenerateQuestions")
	})

	t.Run("propagates engine failure without persisting", func(t *testing.T) {
		provider := &mockQuestionProvider{}
		repo := &mockSessionRepo{}
		service := services.NewSessionService(provider, repo, sessionConfig())

		provider.On("GenerateQuestions", mock.Anything, "headphones", 3, 3).
			Return(nil, apperrors.NewQuestionGenerationError("engine down", nil))

		_, err := service.Generate(context.Background(), "user-1", "headphones", 3, 3)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeQuestionGeneration))
		repo.AssertNotCalled(t, "Create")
	})
}

func TestSessionService_SubmitAnswers(t *testing.T) {
	liveSession := func() *entities.Session {
		return &entities.Session{
			ID:        "sess-1",
			UserID:    "user-1",
			Query:     "wireless headphones",
			Questions: sampleQuestions(),
			Answers:   map[string]string{"q1": "Under $50"},
			ExpiresAt: time.Now().Add(time.Hour),
		}
	}

	t.Run("merges valid answers and drops unknown keys", func(t *testing.T) {
		repo := &mockSessionRepo{}
		service := services.NewSessionService(&mockQuestionProvider{}, repo, sessionConfig())

		repo.On("GetByID", mock.Anything, "sess-1").Return(liveSession(), nil)
		repo.On("UpdateAnswers", mock.Anything, "sess-1", map[string]string{
			"q1": "Under $50",
			"q2": "Daily",
		}).Return(nil)

		session, err := service.SubmitAnswers(context.Background(), "sess-1", map[string]string{
			"q2":      "Daily",
			"unknown": "whatever",
		})
		require.NoError(t, err)
		assert.Equal(t, "Daily", session.Answers["q2"])
		assert.NotContains(t, session.Answers, "unknown")
		repo.AssertExpectations(t)
	})

	t.Run("last write wins for a repeated question", func(t *testing.T) {
		repo := &mockSessionRepo{}
		service := services.NewSessionService(&mockQuestionProvider{}, repo, sessionConfig())

		repo.On("GetByID", mock.Anything, "sess-1").Return(liveSession(), nil)
		repo.On("UpdateAnswers", mock.Anything, "sess-1", map[string]string{
			"q1": "Over $150",
		}).Return(nil)

		session, err := service.SubmitAnswers(context.Background(), "sess-1", map[string]string{
			"q1": "Over $150",
		})
		require.NoError(t, err)
		assert.Equal(t, "Over $150", session.Answers["q1"])
	})

	t.Run("rejects empty submission", func(t *testing.T) {
		repo := &mockSessionRepo{}
		service := services.NewSessionService(&mockQuestionProvider{}, repo, sessionConfig())

		_, err := service.SubmitAnswers(context.Background(), "sess-1", nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		repo.AssertNotCalled(t, "GetByID")
	})

	t.Run("propagates not found for expired session", func(t *testing.T) {
		repo := &mockSessionRepo{}
		service := services.NewSessionService(&mockQuestionProvider{}, repo, sessionConfig())

		repo.On("GetByID", mock.Anything, "sess-gone").
			Return(nil, apperrors.NewNotFoundError("session with id sess-gone not found"))

		_, err := service.SubmitAnswers(context.Background(), "sess-gone", map[string]string{"q1": "Daily"})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}
