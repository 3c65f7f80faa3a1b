package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/rs/zerolog/log"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/repositories"
	"github.com/pickwise/pickwise-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

// SessionAdapter implements the SessionRepository interface
type SessionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSessionAdapter creates a new session adapter
func NewSessionAdapter(client *postgres.Client) repositories.SessionRepository {
	return &SessionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new session
func (a *SessionAdapter) Create(ctx context.Context, session *entities.Session) error {
	questionsJSON, err := json.Marshal(session.Questions)
	if err != nil {
		return apperrors.NewInternalError("failed to encode session questions", err)
	}
	answersJSON, err := json.Marshal(session.Answers)
	if err != nil {
		return apperrors.NewInternalError("failed to encode session answers", err)
	}

	record := goqu.Record{
		"id":         session.ID,
		"user_id":    session.UserID,
		"query":      session.Query,
		"questions":  questionsJSON,
		"answers":    answersJSON,
		"created_at": session.CreatedAt,
		"updated_at": session.UpdatedAt,
		"expires_at": session.ExpiresAt,
	}

	query, args, err := a.db.Insert("sessions").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewStorageError("failed to create session", err)
	}

	return nil
}

// GetByID retrieves a session by ID. A session past its TTL is removed on
// read and reported as not found.
func (a *SessionAdapter) GetByID(ctx context.Context, id string) (*entities.Session, error) {
	query, args, err := a.db.Select(
		"id", "user_id", "query", "questions", "answers",
		"created_at", "updated_at", "expires_at",
	).From("sessions").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	session := &entities.Session{}
	var questionsJSON, answersJSON []byte

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&session.ID,
		&session.UserID,
		&session.Query,
		&questionsJSON,
		&answersJSON,
		&session.CreatedAt,
		&session.UpdatedAt,
		&session.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to get session", err)
	}

	if session.Expired(time.Now()) {
		if delErr := a.Delete(ctx, id); delErr != nil {
			log.Warn().Err(delErr).Str("session_id", id).Msg("failed to remove expired session")
		}
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session with id %s not found", id))
	}

	if err := json.Unmarshal(questionsJSON, &session.Questions); err != nil {
		return nil, apperrors.NewInternalError("failed to decode session questions", err)
	}
	if err := json.Unmarshal(answersJSON, &session.Answers); err != nil {
		return nil, apperrors.NewInternalError("failed to decode session answers", err)
	}
	if session.Answers == nil {
		session.Answers = map[string]string{}
	}

	return session, nil
}

// UpdateAnswers replaces the session's answer map. The expiry guard in the
// WHERE clause keeps an update from resurrecting a session whose TTL elapsed
// between read and write.
func (a *SessionAdapter) UpdateAnswers(ctx context.Context, id string, answers map[string]string) error {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return apperrors.NewInternalError("failed to encode session answers", err)
	}

	query, args, err := a.db.Update("sessions").
		Set(goqu.Record{
			"answers":    answersJSON,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		Where(goqu.C("expires_at").Gt(time.Now())).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewStorageError("failed to update session answers", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("session with id %s not found", id))
	}

	return nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (a *SessionAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("sessions").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewStorageError("failed to delete session", err)
	}

	return nil
}
