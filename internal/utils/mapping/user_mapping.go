package mapping

import (
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	"github.com/nepalfund/nepalfund_backend/internal/models"
)

// ToModelUser converts a domain User to a model User. Empty optional
// credentials are stored as absent so sparse unique indexes ignore them.
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:           d.UserID,
		Email:            d.Email,
		Provider:         string(d.AuthProvider),
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		Photo:            d.Photo,
		ProfileCompleted: d.ProfileCompleted,
		Bio:              d.Bio,
		Gender:           d.Gender,
		Phone:            d.Phone,
		Username:         d.Username,
		DateOfBirth:      d.DateOfBirth,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.HasPassword() {
		h := *d.PasswordHash
		m.PasswordHash = &h
	}
	if d.HasGoogleID() {
		g := *d.GoogleID
		m.GoogleID = &g
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	provider := domain.AuthProvider(m.Provider)
	if provider == "" {
		provider = domain.ProviderLocal
	}
	return domain.User{
		UserID:           m.UserID,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		GoogleID:         m.GoogleID,
		AuthProvider:     provider,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Photo:            m.Photo,
		ProfileCompleted: m.ProfileCompleted,
		Bio:              m.Bio,
		Gender:           m.Gender,
		Phone:            m.Phone,
		Username:         m.Username,
		DateOfBirth:      m.DateOfBirth,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
