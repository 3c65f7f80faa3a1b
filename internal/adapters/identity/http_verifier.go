package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/internal/domain/providers"
	"github.com/pickwise/pickwise-backend/pkg/config"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

const defaultVerifyTimeout = 5 * time.Second

// HTTPVerifier implements the IdentityProvider interface against an external
// identity service. An unreachable or unconfigured service yields
// ErrIdentityUnavailable so callers can degrade instead of failing requests.
type HTTPVerifier struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPVerifier creates a new identity verifier
func NewHTTPVerifier(cfg *config.IdentityConfig) providers.IdentityProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}

	return &HTTPVerifier{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type verifyResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyToken checks an opaque bearer credential with the identity service.
func (v *HTTPVerifier) VerifyToken(ctx context.Context, token string) (*entities.UserIdentity, error) {
	if v.baseURL == "" {
		return nil, fmt.Errorf("identity url not configured: %w", providers.ErrIdentityUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build identity request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if v.apiKey != "" {
		req.Header.Set("apikey", v.apiKey)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity request failed: %v: %w", err, providers.ErrIdentityUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, apperrors.NewInvalidCredentialError("credential rejected by identity service")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("identity service returned status %d: %w", resp.StatusCode, providers.ErrIdentityUnavailable)
	}

	var payload verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %v: %w", err, providers.ErrIdentityUnavailable)
	}
	if payload.ID == "" {
		return nil, apperrors.NewInvalidCredentialError("identity service returned no user")
	}

	return &entities.UserIdentity{
		UserID: payload.ID,
		Email:  payload.Email,
	}, nil
}
