package dto

import (
	"time"

	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCampaignRequest is the payload of POST /campaigns. Amount accepts a
// JSON number or a numeric string.
type CreateCampaignRequest struct {
	Title       string          `json:"title" binding:"required,notblank"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"required,notblank"`
	PhotoURLs   []string        `json:"photoUrls" binding:"omitempty,dive,http_url"`
	Email       string          `json:"email" binding:"required,email"`
	Username    string          `json:"username"`
}

// CampaignResponse is the public view of a campaign.
type CampaignResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	PhotoURLs   []string        `json:"photoUrls"`
	Email       string          `json:"email"`
	Username    string          `json:"username,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CreateCampaignResponse wraps a created campaign.
type CreateCampaignResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Campaign CampaignResponse `json:"campaign"`
}

// ToCampaignResponse converts a domain campaign to its public view.
func ToCampaignResponse(c *domain.Campaign) CampaignResponse {
	photos := c.PhotoURLs
	if photos == nil {
		photos = []string{}
	}
	return CampaignResponse{
		ID:          c.CampaignID,
		Title:       c.Title,
		Amount:      c.Amount,
		Description: c.Description,
		PhotoURLs:   photos,
		Email:       c.OwnerEmail,
		Username:    c.Username,
		CreatedAt:   c.CreatedAt,
	}
}

// ToCampaignListResponse converts a feed to its public view.
func ToCampaignListResponse(campaigns []domain.Campaign) []CampaignResponse {
	out := make([]CampaignResponse, len(campaigns))
	for i := range campaigns {
		out[i] = ToCampaignResponse(&campaigns[i])
	}
	return out
}
