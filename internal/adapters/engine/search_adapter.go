package engine

import (
	"context"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/providers"
	"github.com/pickwise/pickwise-backend/internal/infrastructure/clients/engineapi"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

// SearchAdapter implements the SearchProvider interface against the engine
// service. A dispatch is a single attempt; a failed attempt surfaces to the
// caller, who decides whether the user retries.
type SearchAdapter struct {
	client *engineapi.Client
}

// NewSearchAdapter creates a new search adapter
func NewSearchAdapter(client *engineapi.Client) providers.SearchProvider {
	return &SearchAdapter{client: client}
}

// Search dispatches one personalized search.
func (a *SearchAdapter) Search(ctx context.Context, req *entities.SearchRequest) ([]entities.SearchResult, error) {
	resp, err := a.client.Search(ctx, req)
	if err != nil {
		return nil, apperrors.NewSearchFailedError("search engine request failed", err)
	}

	if !resp.Success {
		return nil, apperrors.NewSearchFailedError("search engine reported failure: "+resp.Error, nil)
	}

	return resp.Results, nil
}
