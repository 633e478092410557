package domain

import "strings"

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User is the durable identity record. Email is the natural key.
type User struct {
	UserID           string       `json:"id"`
	Email            string       `json:"email"`
	PasswordHash     *string      `json:"-"`
	GoogleID         *string      `json:"-"`
	AuthProvider     AuthProvider `json:"provider"`
	FirstName        string       `json:"firstName"`
	LastName         string       `json:"lastName"`
	Photo            string       `json:"photo"`
	ProfileCompleted bool         `json:"profileCompleted"`
	Bio              string       `json:"bio"`
	Gender           string       `json:"gender"`
	Phone            string       `json:"phone"`
	Username         string       `json:"username"`
	DateOfBirth      string       `json:"dob,omitempty"`
	AuditFields
}

// HasPassword reports whether a local credential is set.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// HasGoogleID reports whether the account is linked to a Google subject.
func (u *User) HasGoogleID() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}

// ProfilePatch lists the fields a profile update may change. Nil pointers are left untouched.
type ProfilePatch struct {
	FirstName        *string
	LastName         *string
	Username         *string
	Bio              *string
	Gender           *string
	Phone            *string
	Photo            *string
	ProfileCompleted *bool
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailLocalPart returns the substring before the first '@'.
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.TrimSpace(local)
}
