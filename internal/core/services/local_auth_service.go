package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nepalfund/nepalfund_backend/internal/apperrors"
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	portsrepo "github.com/nepalfund/nepalfund_backend/internal/core/ports/repositories"
	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
	"github.com/nepalfund/nepalfund_backend/internal/dto"
	"github.com/nepalfund/nepalfund_backend/internal/utils"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

type localAuthService struct {
	BaseService
	users portsrepo.UserRepositoryFacade
	now   func() time.Time
}

// NewLocalAuthService creates the password credential path.
func NewLocalAuthService(users portsrepo.UserRepositoryFacade, opts ...ServiceOption) portssvc.LocalAuthSvc {
	return &localAuthService{
		BaseService: newBaseService(opts),
		users:       users,
		now:         nowUTC,
	}
}

func (s *localAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := domain.NormalizeEmail(req.Email)

	switch {
	case firstName == "" || lastName == "" || email == "" || req.Password == "":
		s.observe(flowLocalRegister, outcomeRejected)
		return nil, apperrors.NewValidationError("firstName, lastName, email and password are required")
	case len(req.Password) < MinPasswordLength:
		s.observe(flowLocalRegister, outcomeRejected)
		return nil, apperrors.NewValidationError("password must be at least %d characters", MinPasswordLength)
	}

	_, err := s.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		s.observe(flowLocalRegister, outcomeRejected)
		return nil, fmt.Errorf("register %s: %w", email, apperrors.ErrDuplicate)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.observe(flowLocalRegister, outcomeError)
		s.LogError(ctx, err, "Failed to look up email for registration")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrAccountPersistence, err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.observe(flowLocalRegister, outcomeError)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		Email:            email,
		PasswordHash:     &hash,
		AuthProvider:     domain.ProviderLocal,
		FirstName:        firstName,
		LastName:         lastName,
		Gender:           strings.TrimSpace(req.Gender),
		DateOfBirth:      strings.TrimSpace(req.DOB),
		Username:         domain.EmailLocalPart(email),
		ProfileCompleted: true,
		AuditFields:      domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	saved, err := s.users.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.observe(flowLocalRegister, outcomeRejected)
			return nil, fmt.Errorf("register %s: %w", email, err)
		}
		s.observe(flowLocalRegister, outcomeError)
		s.LogError(ctx, err, "Failed to save registered user")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrAccountPersistence, err)
	}

	s.observe(flowLocalRegister, outcomeSuccess)
	s.track(saved.UserID, eventSignedUp, map[string]any{"provider": string(domain.ProviderLocal)})
	s.LogInfo(ctx, "User registered", slog.String("user_id", saved.UserID))
	return saved, nil
}

func (s *localAuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		s.observe(flowLocalLogin, outcomeRejected)
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.observe(flowLocalLogin, outcomeRejected)
			return nil, apperrors.ErrInvalidCredentials
		}
		s.observe(flowLocalLogin, outcomeError)
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrAccountPersistence, err)
	}

	// Google-only accounts have no password to compare against.
	if !user.HasPassword() || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		s.observe(flowLocalLogin, outcomeRejected)
		s.LogDebug(ctx, "Login rejected", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrInvalidCredentials
	}

	s.observe(flowLocalLogin, outcomeSuccess)
	s.track(user.UserID, eventLoggedIn, map[string]any{"provider": string(domain.ProviderLocal)})
	return user, nil
}
