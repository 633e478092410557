package mapping

import (
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	"github.com/nepalfund/nepalfund_backend/internal/models"
)

// ToModelCampaign converts a domain Campaign to a model Campaign
func ToModelCampaign(d domain.Campaign) models.Campaign {
	photos := d.PhotoURLs
	if photos == nil {
		photos = []string{}
	}
	return models.Campaign{
		CampaignID:  d.CampaignID,
		Title:       d.Title,
		Amount:      d.Amount,
		Description: d.Description,
		PhotoURLs:   photos,
		OwnerEmail:  d.OwnerEmail,
		Username:    d.Username,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainCampaign converts a model Campaign to a domain Campaign
func ToDomainCampaign(m models.Campaign) domain.Campaign {
	return domain.Campaign{
		CampaignID:  m.CampaignID,
		Title:       m.Title,
		Amount:      m.Amount,
		Description: m.Description,
		PhotoURLs:   m.PhotoURLs,
		OwnerEmail:  m.OwnerEmail,
		Username:    m.Username,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainCampaignSlice converts a slice of model Campaigns to a slice of domain Campaigns
func ToDomainCampaignSlice(ms []models.Campaign) []domain.Campaign {
	ds := make([]domain.Campaign, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCampaign(m)
	}
	return ds
}
