package services

import (
	"context"

	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
)

// ProfileUpdate is a profile change request. A nil Photo leaves the stored photo unchanged.
type ProfileUpdate struct {
	Email     string
	FirstName *string
	LastName  *string
	Username  *string
	Bio       *string
	Gender    *string
	Photo     *string
}

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetProfile(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines profile mutations. Both mark the profile completed.
type UserWriterSvc interface {
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.User, error)

	// CompleteGoogleProfile stores the confirmed name and phone of a Google account.
	CompleteGoogleProfile(ctx context.Context, email, name, phone string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
