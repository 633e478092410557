package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nepalfund/nepalfund_backend/internal/apperrors"
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	portsrepo "github.com/nepalfund/nepalfund_backend/internal/core/ports/repositories"
	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
)

type googleAuthService struct {
	BaseService
	users    portsrepo.UserRepositoryFacade
	verifier portssvc.CredentialVerifier
	now      func() time.Time
}

// NewGoogleAuthService creates the Google sign-in flow.
func NewGoogleAuthService(users portsrepo.UserRepositoryFacade, verifier portssvc.CredentialVerifier, opts ...ServiceOption) portssvc.GoogleAuthSvc {
	return &googleAuthService{
		BaseService: newBaseService(opts),
		users:       users,
		verifier:    verifier,
		now:         nowUTC,
	}
}

func (s *googleAuthService) GoogleLogin(ctx context.Context, credential string) (*domain.User, domain.ReconcileOutcome, error) {
	identity, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		if errors.Is(err, apperrors.ErrVerificationUnavailable) {
			s.observe(flowGoogleLogin, outcomeError)
		} else {
			s.observe(flowGoogleLogin, outcomeRejected)
		}
		return nil, "", err
	}
	return s.Reconcile(ctx, *identity)
}

// Reconcile is safe to retry: the lookup is repeated on every call.
func (s *googleAuthService) Reconcile(ctx context.Context, identity domain.VerifiedIdentity) (*domain.User, domain.ReconcileOutcome, error) {
	email := domain.NormalizeEmail(identity.Email)
	if email == "" || identity.Subject == "" {
		s.observe(flowGoogleLogin, outcomeRejected)
		return nil, "", fmt.Errorf("%w: identity has no email or subject", apperrors.ErrInvalidToken)
	}
	logger := s.GetLogger(ctx).With(slog.String("google_sub", identity.Subject))

	matches, err := s.users.FindUsersByEmailOrGoogleID(ctx, email, identity.Subject)
	if err != nil {
		return nil, "", s.persistenceFailure(ctx, err, "Failed to look up account for Google sign-in")
	}
	matches = distinctUsers(matches)

	var (
		user    *domain.User
		outcome domain.ReconcileOutcome
	)
	switch len(matches) {
	case 0:
		user, err = s.createAccount(ctx, identity, email)
		outcome = domain.OutcomeCreated
	case 1:
		user, outcome, err = s.linkAccount(ctx, matches[0], identity, email)
	default:
		s.observe(flowGoogleLogin, outcomeRejected)
		logger.Warn("Email and Google subject belong to different accounts",
			slog.String("email_user_id", matches[0].UserID), slog.String("google_user_id", matches[1].UserID))
		return nil, "", fmt.Errorf("%w: email and google subject map to different accounts", apperrors.ErrAccountConflict)
	}
	if err != nil {
		return nil, "", err
	}

	s.observe(flowGoogleLogin, string(outcome))
	logger.Info("Google sign-in reconciled", slog.String("user_id", user.UserID), slog.String("outcome", string(outcome)))
	return user, outcome, nil
}

func (s *googleAuthService) createAccount(ctx context.Context, identity domain.VerifiedIdentity, email string) (*domain.User, error) {
	firstName, lastName := ResolveNames(identity, email, "", "")
	subject := identity.Subject
	now := s.now()

	saved, err := s.users.SaveUser(ctx, domain.User{
		Email:            email,
		GoogleID:         &subject,
		AuthProvider:     domain.ProviderGoogle,
		FirstName:        firstName,
		LastName:         lastName,
		Photo:            identity.Picture,
		Username:         domain.EmailLocalPart(email),
		ProfileCompleted: false,
		AuditFields:      domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.observe(flowGoogleLogin, outcomeRejected)
			return nil, fmt.Errorf("create google account: %w", err)
		}
		return nil, s.persistenceFailure(ctx, err, "Failed to create Google account")
	}

	s.track(saved.UserID, eventSignedUp, map[string]any{"provider": string(domain.ProviderGoogle)})
	return saved, nil
}

func (s *googleAuthService) linkAccount(ctx context.Context, existing domain.User, identity domain.VerifiedIdentity, email string) (*domain.User, domain.ReconcileOutcome, error) {
	if existing.HasGoogleID() {
		if *existing.GoogleID == identity.Subject {
			s.track(existing.UserID, eventLoggedIn, map[string]any{"provider": string(domain.ProviderGoogle)})
			return &existing, domain.OutcomeUnchanged, nil
		}
		s.observe(flowGoogleLogin, outcomeRejected)
		return nil, "", fmt.Errorf("%w: account %s is linked to another google subject", apperrors.ErrAccountConflict, existing.UserID)
	}

	linked := existing
	subject := identity.Subject
	linked.GoogleID = &subject
	linked.AuthProvider = domain.ProviderGoogle
	linked.FirstName, linked.LastName = ResolveNames(identity, email, existing.FirstName, existing.LastName)
	if linked.Photo == "" {
		linked.Photo = identity.Picture
	}
	linked.LastUpdatedAt = s.now()

	if err := s.users.UpdateUser(ctx, linked); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.observe(flowGoogleLogin, outcomeRejected)
			return nil, "", fmt.Errorf("link google account: %w", err)
		}
		return nil, "", s.persistenceFailure(ctx, err, "Failed to link Google account")
	}

	s.track(linked.UserID, eventGoogleLinked, nil)
	return &linked, domain.OutcomeLinked, nil
}

func (s *googleAuthService) persistenceFailure(ctx context.Context, err error, msg string) error {
	s.observe(flowGoogleLogin, outcomeError)
	s.LogError(ctx, err, msg)
	return fmt.Errorf("%w: %w", apperrors.ErrAccountPersistence, err)
}

func distinctUsers(users []domain.User) []domain.User {
	seen := make(map[string]bool, len(users))
	out := users[:0:0]
	for _, u := range users {
		if seen[u.UserID] {
			continue
		}
		seen[u.UserID] = true
		out = append(out, u)
	}
	return out
}
