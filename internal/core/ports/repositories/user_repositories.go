package repositories

import (
	"context"

	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
)

// UserReader defines read operations for the identity store.
type UserReader interface {
	// FindUserByID retrieves a user by store id. Returns apperrors.ErrNotFound when absent.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by normalised email. Returns apperrors.ErrNotFound when absent.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsersByEmailOrGoogleID returns every distinct record whose email or googleId
	// matches. An empty googleID only matches on email.
	FindUsersByEmailOrGoogleID(ctx context.Context, email, googleID string) ([]domain.User, error)
}

// UserWriter defines write operations for the identity store.
// Uniqueness violations on email or googleId are reported as apperrors.ErrDuplicate.
type UserWriter interface {
	// SaveUser inserts a new record and returns it with its assigned id.
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)

	// UpdateUser replaces the mutable fields of the record identified by user.UserID.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateUserByEmail applies the patch and returns the updated record.
	UpdateUserByEmail(ctx context.Context, email string, patch domain.ProfilePatch) (*domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
