package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/nepalfund/nepalfund_backend/internal/apperrors"
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	portsrepo "github.com/nepalfund/nepalfund_backend/internal/core/ports/repositories"
	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
	"github.com/nepalfund/nepalfund_backend/internal/dto"
)

type campaignService struct {
	BaseService
	campaignRepo portsrepo.CampaignRepositoryFacade
	now          func() time.Time
}

// NewCampaignService creates the campaign feed service.
func NewCampaignService(campaignRepo portsrepo.CampaignRepositoryFacade, opts ...ServiceOption) portssvc.CampaignSvcFacade {
	return &campaignService{
		BaseService:  newBaseService(opts),
		campaignRepo: campaignRepo,
		now:          nowUTC,
	}
}

func (s *campaignService) CreateCampaign(ctx context.Context, req dto.CreateCampaignRequest) (*domain.Campaign, error) {
	campaign := domain.Campaign{
		Title:       strings.TrimSpace(req.Title),
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		OwnerEmail:  domain.NormalizeEmail(req.Email),
		Username:    strings.TrimSpace(req.Username),
		CreatedAt:   s.now(),
	}
	switch {
	case campaign.Title == "":
		return nil, apperrors.NewValidationError("title is required")
	case campaign.Description == "":
		return nil, apperrors.NewValidationError("description is required")
	case campaign.OwnerEmail == "":
		return nil, apperrors.NewValidationError("email is required")
	case !campaign.Amount.IsPositive():
		return nil, apperrors.NewValidationError("amount must be greater than zero")
	case !domain.AmountFits(campaign.Amount):
		return nil, apperrors.NewValidationError("amount must be below 10^%d with at most %d decimal places",
			domain.AmountIntegerDigits, domain.AmountScale)
	}

	photos := make([]string, 0, len(req.PhotoURLs))
	for _, raw := range req.PhotoURLs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, apperrors.NewValidationError("photo url %q must be an absolute http(s) url", raw)
		}
		photos = append(photos, raw)
	}
	campaign.PhotoURLs = photos

	saved, err := s.campaignRepo.SaveCampaign(ctx, campaign)
	if err != nil {
		s.LogError(ctx, err, "Failed to save campaign")
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.track(saved.OwnerEmail, eventCampaignCreated, map[string]any{
		"campaign_id": saved.CampaignID,
		"amount":      saved.Amount.String(),
		"photos":      len(saved.PhotoURLs),
	})
	s.LogInfo(ctx, "Campaign created", slog.String("campaign_id", saved.CampaignID))
	return saved, nil
}

func (s *campaignService) ListFeed(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.campaignRepo.ListCampaigns(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list campaigns")
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	domain.SortFeed(campaigns)
	return campaigns, nil
}
