package dto

import (
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	"github.com/nepalfund/nepalfund_backend/pkg/onboarding"
)

// RegisterRequest is the manual sign-up payload.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required,notblank"`
	LastName  string `json:"lastName" binding:"required,notblank"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Gender    string `json:"gender"`
	DOB       string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
}

// LoginRequest is the manual login payload. Missing fields are left to the
// service so they fail as invalid credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleLoginRequest carries the ID token issued to the browser by Google Identity Services.
type GoogleLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// ExchangeCodeRequest carries an OAuth authorization code from the consent redirect.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleLoginURLResponse is returned by the consent URL endpoint.
type GoogleLoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// UserSummary is the user view returned by every authentication endpoint.
type UserSummary struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Photo            string `json:"photo"`
	Provider         string `json:"provider"`
	ProfileCompleted bool   `json:"profileCompleted"`
}

// AuthResponse wraps the result of a successful authentication.
type AuthResponse struct {
	Success bool                   `json:"success"`
	User    UserSummary            `json:"user"`
	Token   string                 `json:"token,omitempty"`
	Outcome string                 `json:"outcome,omitempty"`
	Next    onboarding.Destination `json:"next"`
}

// CheckAuthResponse is returned by the session check endpoint.
type CheckAuthResponse struct {
	Success         bool        `json:"success"`
	IsAuthenticated bool        `json:"isAuthenticated"`
	User            UserSummary `json:"user"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ToUserSummary converts a domain user to its public summary.
func ToUserSummary(u *domain.User) UserSummary {
	return UserSummary{
		ID:               u.UserID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Photo:            u.Photo,
		Provider:         string(u.AuthProvider),
		ProfileCompleted: u.ProfileCompleted,
	}
}

// ToSession builds the onboarding session for an authenticated user.
func ToSession(u *domain.User, token string) onboarding.Session {
	return onboarding.Session{
		UserID:           u.UserID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Token:            token,
		ProfileCompleted: u.ProfileCompleted,
	}
}
