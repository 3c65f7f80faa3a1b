package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/repositories"
	"github.com/pickwise/pickwise-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

// HistoryAdapter implements the HistoryRepository interface
type HistoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHistoryAdapter creates a new search history adapter
func NewHistoryAdapter(client *postgres.Client) repositories.HistoryRepository {
	return &HistoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// AppendWithCap inserts the entry and prunes the user's oldest entries beyond
// cap in one transaction. An advisory lock keyed on the user serializes
// concurrent appends so the cap holds without a table-wide lock.
func (a *HistoryAdapter) AppendWithCap(ctx context.Context, entry *entities.SearchHistoryEntry, cap int) error {
	answersJSON, err := json.Marshal(entry.Answers)
	if err != nil {
		return apperrors.NewInternalError("failed to encode history answers", err)
	}
	questionsJSON, err := json.Marshal(entry.Questions)
	if err != nil {
		return apperrors.NewInternalError("failed to encode history questions", err)
	}
	resultsJSON, err := json.Marshal(entry.Results)
	if err != nil {
		return apperrors.NewInternalError("failed to encode history results", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewStorageError("failed to begin history transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, entry.UserID); err != nil {
		return apperrors.NewStorageError("failed to acquire history lock", err)
	}

	insertSQL, insertArgs, err := a.db.Insert("search_history").Rows(goqu.Record{
		"id":             entry.ID,
		"user_id":        entry.UserID,
		"query":          entry.Query,
		"answers":        answersJSON,
		"questions":      questionsJSON,
		"search_results": resultsJSON,
		"created_at":     entry.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build history insert", err)
	}

	if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return apperrors.NewStorageError("failed to insert history entry", err)
	}

	// seq breaks created_at ties by insertion order.
	pruneSQL := `
		DELETE FROM search_history
		WHERE user_id = $1
		  AND id NOT IN (
			SELECT id FROM search_history
			WHERE user_id = $1
			ORDER BY created_at DESC, seq DESC
			LIMIT $2
		  )`
	if _, err := tx.ExecContext(ctx, pruneSQL, entry.UserID, cap); err != nil {
		return apperrors.NewStorageError("failed to prune history entries", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("failed to commit history transaction", err)
	}

	return nil
}

// ListByUser retrieves the user's most recent history entries, newest first.
func (a *HistoryAdapter) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SearchHistoryEntry, error) {
	ds := a.db.Select(
		"id", "user_id", "query", "answers", "questions",
		"search_results", "created_at",
	).From("search_history").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc(), goqu.I("seq").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build history query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list history entries", err)
	}
	defer rows.Close()

	var entries []*entities.SearchHistoryEntry
	for rows.Next() {
		entry := &entities.SearchHistoryEntry{}
		var answersJSON, questionsJSON, resultsJSON []byte
		var createdAt time.Time

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Query,
			&answersJSON,
			&questionsJSON,
			&resultsJSON,
			&createdAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan history entry", err)
		}
		entry.CreatedAt = createdAt

		if err := json.Unmarshal(answersJSON, &entry.Answers); err != nil {
			return nil, apperrors.NewInternalError("failed to decode history answers", err)
		}
		if err := json.Unmarshal(questionsJSON, &entry.Questions); err != nil {
			return nil, apperrors.NewInternalError("failed to decode history questions", err)
		}
		if err := json.Unmarshal(resultsJSON, &entry.Results); err != nil {
			return nil, apperrors.NewInternalError("failed to decode history results", err)
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to read history rows", err)
	}

	return entries, nil
}
