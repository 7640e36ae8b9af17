package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumieats/table-ordering-platform/internal/models"
	"github.com/lumieats/table-ordering-platform/internal/utils"
)

type RestaurantRepository interface {
	GetRestaurantByID(ctx context.Context, id string) (*models.Restaurant, error)
	GetTable(ctx context.Context, restaurantID, tableID string) (*models.Table, error)
}

type restaurantRepository struct {
	DB *sql.DB
}

func NewRestaurantRepo(db *sql.DB) RestaurantRepository {
	return &restaurantRepository{DB: db}
}

func (r *restaurantRepository) GetRestaurantByID(ctx context.Context, id string) (*models.Restaurant, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, contact_email, review_platform_url, currency, created_at, updated_at
		FROM restaurants
		WHERE id = $1
	`

	restaurant := &models.Restaurant{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&restaurant.ID, &restaurant.Name, &restaurant.ContactEmail, &restaurant.ReviewPlatformURL, &restaurant.Currency, &restaurant.CreatedAt, &restaurant.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return restaurant, nil
}

func (r *restaurantRepository) GetTable(ctx context.Context, restaurantID, tableID string) (*models.Table, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, label, created_at
		FROM tables
		WHERE restaurant_id = $1 AND id = $2
	`

	table := &models.Table{}

	err := r.DB.QueryRowContext(dbCtx, query, restaurantID, tableID).Scan(&table.ID, &table.RestaurantID, &table.Label, &table.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return table, nil
}
