package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	portsrepo "github.com/nepalfund/nepalfund_backend/internal/core/ports/repositories"
	"github.com/nepalfund/nepalfund_backend/internal/models"
	"github.com/nepalfund/nepalfund_backend/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCampaignRepository struct {
	col *mongo.Collection
}

func newMongoCampaignRepository(s *Store) portsrepo.CampaignRepositoryFacade {
	return &MongoCampaignRepository{col: s.colCampaigns}
}

var _ portsrepo.CampaignRepositoryFacade = (*MongoCampaignRepository)(nil)

func (r *MongoCampaignRepository) SaveCampaign(ctx context.Context, campaign domain.Campaign) (*domain.Campaign, error) {
	if campaign.CampaignID == "" {
		campaign.CampaignID = uuid.NewString()
	}
	if campaign.CreatedAt.IsZero() {
		campaign.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, mapping.ToModelCampaign(campaign)); err != nil {
		return nil, fmt.Errorf("failed to save campaign: %w", err)
	}
	return &campaign, nil
}

func (r *MongoCampaignRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	opts := options.Find().SetSort(bson.D{{Key: "amount", Value: -1}, {Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	ms := []models.Campaign{}
	if err := cur.All(ctx, &ms); err != nil {
		return nil, fmt.Errorf("failed to decode campaigns: %w", err)
	}
	return mapping.ToDomainCampaignSlice(ms), nil
}
