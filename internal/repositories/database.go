package repository

import (
	"database/sql"
	"fmt"

	"github.com/lumieats/table-ordering-platform/internal/config"

	_ "github.com/lib/pq"
)

// Repositories bundles every Postgres-backed store behind one
// connection pool.
type Repositories struct {
	DB *sql.DB

	Restaurant RestaurantRepository
	Product    ProductRepository
	Campaign   CampaignRepository
	Coupon     CouponRepository
	Order      OrderRepository
	Feedback   FeedbackRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		DB:         db,
		Restaurant: NewRestaurantRepo(db),
		Product:    NewProductRepo(db),
		Campaign:   NewCampaignRepo(db),
		Coupon:     NewCouponRepo(db),
		Order:      NewOrderRepo(db),
		Feedback:   NewFeedbackRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
