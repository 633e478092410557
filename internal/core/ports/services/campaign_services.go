package services

import (
	"context"

	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	"github.com/nepalfund/nepalfund_backend/internal/dto"
)

// CampaignSvcFacade defines the campaign feed operations.
type CampaignSvcFacade interface {
	CreateCampaign(ctx context.Context, req dto.CreateCampaignRequest) (*domain.Campaign, error)
	// ListFeed returns every campaign, highest amount first then newest.
	ListFeed(ctx context.Context) ([]domain.Campaign, error)
}
