package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nepalfund/nepalfund_backend/internal/apperrors"
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// payloadValidator is satisfied by *idtoken.Validator.
type payloadValidator interface {
	Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

type googleCredentialVerifier struct {
	BaseService
	validator payloadValidator
	clientID  string
	timeout   time.Duration
}

// NewGoogleCredentialVerifier verifies Google ID tokens issued to clientID.
// Certificate fetches and validation share one deadline of timeout.
func NewGoogleCredentialVerifier(ctx context.Context, clientID string, timeout time.Duration) (portssvc.CredentialVerifier, error) {
	validator, err := idtoken.NewValidator(ctx, option.WithHTTPClient(&http.Client{Timeout: timeout}))
	if err != nil {
		return nil, fmt.Errorf("failed to create google id token validator: %w", err)
	}
	return newGoogleCredentialVerifier(validator, clientID, timeout), nil
}

func newGoogleCredentialVerifier(validator payloadValidator, clientID string, timeout time.Duration) *googleCredentialVerifier {
	return &googleCredentialVerifier{validator: validator, clientID: clientID, timeout: timeout}
}

// Verify checks signature, expiry, audience and issuer of a Google ID token.
func (v *googleCredentialVerifier) Verify(ctx context.Context, token string) (*domain.VerifiedIdentity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: empty credential", apperrors.ErrInvalidToken)
	}
	if v.clientID == "" {
		v.LogError(ctx, errors.New("GOOGLE_CLIENT_ID not configured"), "Rejecting Google credential")
		return nil, fmt.Errorf("%w: no audience configured", apperrors.ErrInvalidToken)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	payload, err := v.validator.Validate(verifyCtx, token, v.clientID)
	if err != nil {
		if isUnavailable(verifyCtx, err) {
			v.LogError(ctx, err, "Google token verification unavailable")
			return nil, fmt.Errorf("%w: %w", apperrors.ErrVerificationUnavailable, err)
		}
		v.LogDebug(ctx, "Google token rejected", slog.String("reason", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}

	if payload.Audience != v.clientID {
		return nil, fmt.Errorf("%w: audience mismatch", apperrors.ErrInvalidToken)
	}
	if !googleIssuers[payload.Issuer] {
		return nil, fmt.Errorf("%w: unexpected issuer %q", apperrors.ErrInvalidToken, payload.Issuer)
	}

	identity := identityFromPayload(payload)
	if identity.Subject == "" || identity.Email == "" {
		return nil, fmt.Errorf("%w: token has no subject or email", apperrors.ErrInvalidToken)
	}
	if !identity.EmailVerified {
		return nil, fmt.Errorf("%w: email not verified", apperrors.ErrInvalidToken)
	}
	return identity, nil
}

func identityFromPayload(p *idtoken.Payload) *domain.VerifiedIdentity {
	claim := func(key string) string {
		s, _ := p.Claims[key].(string)
		return strings.TrimSpace(s)
	}
	verified := false
	switch ev := p.Claims["email_verified"].(type) {
	case bool:
		verified = ev
	case string:
		verified = strings.EqualFold(ev, "true")
	}
	return &domain.VerifiedIdentity{
		Subject:       p.Subject,
		Email:         domain.NormalizeEmail(claim("email")),
		EmailVerified: verified,
		GivenName:     claim("given_name"),
		FamilyName:    claim("family_name"),
		Name:          claim("name"),
		Picture:       claim("picture"),
		Audience:      p.Audience,
		Issuer:        p.Issuer,
	}
}

// isUnavailable reports whether err means the issuer could not be reached,
// as opposed to the token being rejected.
func isUnavailable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	// Cert fetch failures are not always wrapped by idtoken.
	return strings.Contains(err.Error(), "unable to retrieve cert")
}
