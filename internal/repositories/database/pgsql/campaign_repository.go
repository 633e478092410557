package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	portsrepo "github.com/nepalfund/nepalfund_backend/internal/core/ports/repositories"
	"github.com/nepalfund/nepalfund_backend/internal/models"
	"github.com/nepalfund/nepalfund_backend/internal/utils/mapping"
)

type PgxCampaignRepository struct {
	BaseRepository
}

func newPgxCampaignRepository(db *pgxpool.Pool) portsrepo.CampaignRepositoryFacade {
	return &PgxCampaignRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.CampaignRepositoryFacade = (*PgxCampaignRepository)(nil)

func (r *PgxCampaignRepository) SaveCampaign(ctx context.Context, campaign domain.Campaign) (*domain.Campaign, error) {
	if campaign.CampaignID == "" {
		campaign.CampaignID = uuid.NewString()
	}
	if campaign.CreatedAt.IsZero() {
		campaign.CreatedAt = time.Now().UTC()
	}
	m := mapping.ToModelCampaign(campaign)

	query := `
        INSERT INTO campaigns (campaign_id, title, amount, description, photo_urls, owner_email, username, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.CampaignID, m.Title, m.Amount, m.Description, m.PhotoURLs, m.OwnerEmail, m.Username, m.CreatedAt,
	)
	if err != nil {
		return nil, wrapWriteErr("failed to save campaign", err)
	}
	return &campaign, nil
}

func (r *PgxCampaignRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	query := `
        SELECT campaign_id, title, amount, description, photo_urls, owner_email, username, created_at
        FROM campaigns
        ORDER BY amount DESC, created_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	ms := []models.Campaign{}
	for rows.Next() {
		var m models.Campaign
		if err := rows.Scan(
			&m.CampaignID,
			&m.Title,
			&m.Amount,
			&m.Description,
			&m.PhotoURLs,
			&m.OwnerEmail,
			&m.Username,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating campaign rows: %w", rows.Err())
	}
	return mapping.ToDomainCampaignSlice(ms), nil
}
