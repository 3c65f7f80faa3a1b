package repositories

import (
	"context"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
)

// HistoryRepository defines the interface for search-history persistence.
type HistoryRepository interface {
	// AppendWithCap inserts the entry and prunes the owner's oldest entries so
	// that at most cap remain, as one logical unit: after it returns
	// successfully the cap holds even under concurrent writers for the same
	// user.
	AppendWithCap(ctx context.Context, entry *entities.SearchHistoryEntry, cap int) error

	// ListByUser returns the owner's most recent entries, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SearchHistoryEntry, error)
}
