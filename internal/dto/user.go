package dto

import (
	"time"

	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
)

// UpdateProfileRequest is bound from the multipart form of PUT /auth/profile.
// Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Email     string  `form:"email" binding:"required,email"`
	FirstName *string `form:"firstName"`
	LastName  *string `form:"lastName"`
	Username  *string `form:"username"`
	Bio       *string `form:"bio"`
	Gender    *string `form:"gender"`
}

// GoogleRegisterRequest completes onboarding for a Google account.
type GoogleRegisterRequest struct {
	Name        string `json:"name" binding:"required,notblank"`
	PhoneNumber string `json:"phoneNumber" binding:"required,phone10"`
	Email       string `json:"email" binding:"required,email"`
}

// ProfileQuery binds GET /auth/profile.
type ProfileQuery struct {
	Email string `form:"email" binding:"required"`
}

// ProfileResponse is the full profile view.
type ProfileResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Username         string    `json:"username"`
	Bio              string    `json:"bio"`
	Gender           string    `json:"gender"`
	Phone            string    `json:"phone"`
	Photo            string    `json:"photo"`
	DateOfBirth      string    `json:"dob,omitempty"`
	Provider         string    `json:"provider"`
	ProfileCompleted bool      `json:"profileCompleted"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// UpdateProfileResponse wraps an updated profile. PhotoUploaded is false when a
// photo was sent but could not be stored.
type UpdateProfileResponse struct {
	Success       bool            `json:"success"`
	User          ProfileResponse `json:"user"`
	PhotoUploaded *bool           `json:"photoUploaded,omitempty"`
}

// ToProfileResponse converts a domain user to the full profile view.
func ToProfileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:               u.UserID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Username:         u.Username,
		Bio:              u.Bio,
		Gender:           u.Gender,
		Phone:            u.Phone,
		Photo:            u.Photo,
		DateOfBirth:      u.DateOfBirth,
		Provider:         string(u.AuthProvider),
		ProfileCompleted: u.ProfileCompleted,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.LastUpdatedAt,
	}
}
