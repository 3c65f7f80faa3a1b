package engine

import (
	"context"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/providers"
	"github.com/pickwise/pickwise-backend/internal/infrastructure/clients/engineapi"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

// QuestionAdapter implements the QuestionProvider interface against the
// engine service. The engine is called once per generation; generated
// questions must pass schema validation before they become session state.
type QuestionAdapter struct {
	client *engineapi.Client
}

// NewQuestionAdapter creates a new question generation adapter
func NewQuestionAdapter(client *engineapi.Client) providers.QuestionProvider {
	return &QuestionAdapter{client: client}
}

// GenerateQuestions asks the engine for a questionnaire for the query.
func (a *QuestionAdapter) GenerateQuestions(ctx context.Context, query string, questionCount, answerCount int) ([]entities.Question, error) {
	resp, err := a.client.GenerateQuestions(ctx, &engineapi.GenerateQuestionsRequest{
		Query:         query,
		QuestionCount: questionCount,
		AnswerCount:   answerCount,
	})
	if err != nil {
		return nil, apperrors.NewQuestionGenerationError("question engine request failed", err)
	}

	if !resp.Success {
		return nil, apperrors.NewQuestionGenerationError("question engine reported failure: "+resp.Error, nil)
	}

	if err := entities.ValidateQuestions(resp.Questions); err != nil {
		return nil, apperrors.NewQuestionGenerationError("engine returned malformed questions", err)
	}

	return resp.Questions, nil
}
