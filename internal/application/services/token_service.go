package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/providers"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

// TokenService resolves the Authorization header of a request into a user
// identity. When the identity backend cannot be consulted the caller gets a
// degraded anonymous identity instead of an error, so the core flow keeps
// working without personalization.
type TokenService struct {
	verifier providers.IdentityProvider
}

// NewTokenService creates a new token service
func NewTokenService(verifier providers.IdentityProvider) *TokenService {
	return &TokenService{verifier: verifier}
}

// Authenticate verifies the Authorization header value.
func (s *TokenService) Authenticate(ctx context.Context, authHeader string) (*entities.UserIdentity, error) {
	token := strings.TrimSpace(authHeader)
	if token == "" {
		return nil, apperrors.NewUnauthenticatedError("authorization header is required")
	}
	if after, ok := strings.CutPrefix(token, "Bearer "); ok {
		token = strings.TrimSpace(after)
	}
	if token == "" {
		return nil, apperrors.NewUnauthenticatedError("bearer token is empty")
	}

	identity, err := s.verifier.VerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, providers.ErrIdentityUnavailable) {
			log.Warn().Err(err).Msg("identity provider unavailable, degrading to anonymous identity")
			return &entities.UserIdentity{Degraded: true}, nil
		}
		return nil, err
	}

	return identity, nil
}
