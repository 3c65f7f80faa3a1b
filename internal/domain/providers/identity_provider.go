package providers

import (
	"context"
	"errors"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
)

// ErrIdentityUnavailable signals that the identity backend could not be
// consulted (missing configuration or transport failure). Callers degrade to
// an anonymous identity instead of failing the request.
var ErrIdentityUnavailable = errors.New("identity provider unavailable")

// IdentityProvider verifies an opaque bearer credential.
type IdentityProvider interface {
	VerifyToken(ctx context.Context, token string) (*entities.UserIdentity, error)
}
