package repositories

import (
	"context"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
)

// SessionRepository defines the interface for session persistence.
// Implementations enforce lazy expiry: a read past the session's TTL removes
// the row and reports not-found, and an answer update can never resurrect an
// expired session.
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	GetByID(ctx context.Context, id string) (*entities.Session, error)
	UpdateAnswers(ctx context.Context, id string, answers map[string]string) error
	Delete(ctx context.Context, id string) error
}
