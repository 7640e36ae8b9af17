package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumieats/table-ordering-platform/internal/models"
	"github.com/lumieats/table-ordering-platform/internal/utils"
)

type CampaignRepository interface {
	GetCampaignByID(ctx context.Context, id string) (*models.Campaign, error)
}

type campaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepo(db *sql.DB) CampaignRepository {
	return &campaignRepository{DB: db}
}

func (r *campaignRepository) GetCampaignByID(ctx context.Context, id string) (*models.Campaign, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, name, win_probability, reward_type, reward_value, reward_description, validity_days, active, created_at
		FROM campaigns
		WHERE id = $1
	`

	campaign := &models.Campaign{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&campaign.ID, &campaign.RestaurantID, &campaign.Name, &campaign.WinProbability, &campaign.RewardType, &campaign.RewardValue, &campaign.RewardDescription, &campaign.ValidityDays, &campaign.Active, &campaign.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return campaign, nil
}
