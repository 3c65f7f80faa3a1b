package entities

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	// MinQuestions and MaxQuestions bound the question list of a session.
	MinQuestions = 1
	MaxQuestions = 10

	// MinAnswerChoices and MaxAnswerChoices bound the choices per question.
	MinAnswerChoices = 2
	MaxAnswerChoices = 6
)

var questionValidate = validator.New()

// Question is a single multiple-choice question. Immutable once generated.
type Question struct {
	ID      string   `json:"id" db:"id" validate:"required"`
	Text    string   `json:"text" db:"text" validate:"required,min=5"`
	Answers []string `json:"answers" db:"answers" validate:"required,min=2,max=6,dive,required"`
}

// Validate checks a single question against the schema bounds.
func (q *Question) Validate() error {
	return questionValidate.Struct(q)
}

// ValidateQuestions checks a generated question list before it is allowed to
// become session state: list bounds, per-question schema, and identifier
// uniqueness.
func ValidateQuestions(questions []Question) error {
	if len(questions) < MinQuestions || len(questions) > MaxQuestions {
		return fmt.Errorf("question list must have %d-%d items, got %d", MinQuestions, MaxQuestions, len(questions))
	}

	seen := make(map[string]struct{}, len(questions))
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return fmt.Errorf("question %q failed schema validation: %w", questions[i].ID, err)
		}
		if _, dup := seen[questions[i].ID]; dup {
			return fmt.Errorf("duplicate question id %q", questions[i].ID)
		}
		seen[questions[i].ID] = struct{}{}
	}

	return nil
}
