package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/repositories"
)

// HistoryService owns per-user search history retention. Each user keeps at
// most cap entries; appending past the cap evicts the oldest.
type HistoryService struct {
	repo repositories.HistoryRepository
	cap  int
}

// NewHistoryService creates a new history service
func NewHistoryService(repo repositories.HistoryRepository, cap int) *HistoryService {
	return &HistoryService{repo: repo, cap: cap}
}

// Record appends a history entry for its owner, evicting beyond the cap.
func (s *HistoryService) Record(ctx context.Context, entry *entities.SearchHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return s.repo.AppendWithCap(ctx, entry, s.cap)
}

// List returns the user's most recent entries, newest first. A non-positive
// limit returns up to the retention cap.
func (s *HistoryService) List(ctx context.Context, userID string, limit int) ([]*entities.SearchHistoryEntry, error) {
	if limit <= 0 || limit > s.cap {
		limit = s.cap
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
