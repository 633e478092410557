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
	"github.com/nepalfund/nepalfund_backend/internal/utils/validation"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewUserService creates the profile service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, opts ...ServiceOption) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBaseService(opts),
		userRepo:    userRepo,
		now:         nowUTC,
	}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email is required")
	}
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, update portssvc.ProfileUpdate) (*domain.User, error) {
	email := domain.NormalizeEmail(update.Email)
	if email == "" {
		return nil, apperrors.NewValidationError("email is required")
	}

	completed := true
	patch := domain.ProfilePatch{
		// An update may change names but never blank them.
		FirstName:        nonBlank(update.FirstName),
		LastName:         nonBlank(update.LastName),
		Username:         trimmed(update.Username),
		Bio:              trimmed(update.Bio),
		Gender:           trimmed(update.Gender),
		Photo:            update.Photo,
		ProfileCompleted: &completed,
	}
	return s.applyPatch(ctx, email, patch)
}

func (s *userService) CompleteGoogleProfile(ctx context.Context, email, name, phone string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	firstName, lastName := SplitDisplayName(name)
	digits := validation.NormalizePhone(phone)

	switch {
	case email == "" || firstName == "" || strings.TrimSpace(phone) == "":
		return nil, apperrors.NewValidationError("name, phone number, and email are required")
	case len(digits) != validation.PhoneDigits:
		return nil, apperrors.NewValidationError("phone number must contain exactly %d digits", validation.PhoneDigits)
	}

	completed := true
	return s.applyPatch(ctx, email, domain.ProfilePatch{
		FirstName:        &firstName,
		LastName:         &lastName,
		Phone:            &digits,
		ProfileCompleted: &completed,
	})
}

func (s *userService) applyPatch(ctx context.Context, email string, patch domain.ProfilePatch) (*domain.User, error) {
	user, err := s.userRepo.UpdateUserByEmail(ctx, email, patch)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("update profile %s: %w", email, err)
		}
		s.LogError(ctx, err, "Failed to update profile")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrAccountPersistence, err)
	}
	s.track(user.UserID, eventProfileCompleted, map[string]any{"provider": string(user.AuthProvider)})
	s.LogInfo(ctx, "Profile updated", slog.String("user_id", user.UserID))
	return user, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

func nonBlank(v *string) *string {
	t := trimmed(v)
	if t == nil || *t == "" {
		return nil
	}
	return t
}
