package repositories

import (
	"context"

	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
)

// CampaignRepositoryFacade defines persistence for the append-only campaign feed.
type CampaignRepositoryFacade interface {
	// SaveCampaign inserts a campaign and returns it with its assigned id.
	SaveCampaign(ctx context.Context, campaign domain.Campaign) (*domain.Campaign, error)

	// ListCampaigns returns all campaigns, highest amount first then newest.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
}
