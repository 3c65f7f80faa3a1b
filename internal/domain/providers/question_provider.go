package providers

import (
	"context"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
)

// QuestionProvider generates a multiple-choice questionnaire for a query.
// Implementations call the engine exactly once; retry is the caller's choice.
type QuestionProvider interface {
	GenerateQuestions(ctx context.Context, query string, questionCount, answerCount int) ([]entities.Question, error)
}
