package providers

import (
	"context"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
)

// SearchProvider dispatches one personalized search to the search engine.
type SearchProvider interface {
	Search(ctx context.Context, req *entities.SearchRequest) ([]entities.SearchResult, error)
}
