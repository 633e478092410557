package services

import (
	"context"
	"time"

	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	"github.com/nepalfund/nepalfund_backend/internal/dto"
)

// CredentialVerifier validates an external identity assertion against its issuing authority.
type CredentialVerifier interface {
	// Verify returns the verified identity, or fails with apperrors.ErrInvalidToken
	// or apperrors.ErrVerificationUnavailable.
	Verify(ctx context.Context, token string) (*domain.VerifiedIdentity, error)
}

// LocalAuthSvc is the password credential path.
type LocalAuthSvc interface {
	// Register creates a local account. Fails with apperrors.ErrDuplicate when the email is taken.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login fails with apperrors.ErrInvalidCredentials for every mismatch.
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

// GoogleAuthSvc maps a Google credential onto a local account.
type GoogleAuthSvc interface {
	// GoogleLogin verifies the ID token and creates, links or returns the matching account.
	GoogleLogin(ctx context.Context, credential string) (*domain.User, domain.ReconcileOutcome, error)

	// Reconcile applies a verified identity to the identity store.
	Reconcile(ctx context.Context, identity domain.VerifiedIdentity) (*domain.User, domain.ReconcileOutcome, error)
}

// TokenSvcFacade issues and parses application session tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ParseAccessToken returns the user id carried by a valid token.
	ParseAccessToken(ctx context.Context, token string) (string, error)
}

// GoogleOAuthHandlerSvcFacade defines the authorization-code flow with Google.
type GoogleOAuthHandlerSvcFacade interface {
	// Enabled reports whether a client secret is configured.
	Enabled() bool
	// GenerateStateString creates a random state value for the consent redirect.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the consent URL to redirect the user to.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForIDToken exchanges an authorization code and returns the raw ID token.
	ExchangeCodeForIDToken(ctx context.Context, code string) (string, error)
}

// EventTracker records product analytics events. Implementations must not block.
type EventTracker interface {
	Track(distinctID, event string, properties map[string]any)
}

// AuthMetrics counts authentication outcomes per flow.
type AuthMetrics interface {
	ObserveAuth(flow, outcome string)
}
