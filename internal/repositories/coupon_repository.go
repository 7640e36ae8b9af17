package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lumieats/table-ordering-platform/internal/models"
	"github.com/lumieats/table-ordering-platform/internal/utils"
)

type CouponRepository interface {
	CreateCoupon(ctx context.Context, coupon *models.Coupon) error
	GetCouponByCode(ctx context.Context, restaurantID, code string) (*models.Coupon, error)
	CountCouponsForDeviceSince(ctx context.Context, deviceID string, since time.Time) (int, error)
	MarkCouponUsed(ctx context.Context, id string) error
}

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepo(db *sql.DB) CouponRepository {
	return &couponRepository{DB: db}
}

func (r *couponRepository) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO coupons (id, restaurant_id, campaign_id, code, status, discount_type, discount_value, discount_description, device_id, valid_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	return r.DB.QueryRowContext(dbCtx, query, coupon.ID, coupon.RestaurantID, coupon.CampaignID, coupon.Code, coupon.Status, coupon.DiscountType, coupon.DiscountValue, coupon.DiscountDescription, coupon.DeviceID, coupon.ValidUntil).Scan(&coupon.CreatedAt)
}

func (r *couponRepository) GetCouponByCode(ctx context.Context, restaurantID, code string) (*models.Coupon, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, campaign_id, code, status, discount_type, discount_value, discount_description, device_id, created_at, valid_until
		FROM coupons
		WHERE restaurant_id = $1 AND code = $2
	`

	coupon := &models.Coupon{}

	err := r.DB.QueryRowContext(dbCtx, query, restaurantID, code).Scan(&coupon.ID, &coupon.RestaurantID, &coupon.CampaignID, &coupon.Code, &coupon.Status, &coupon.DiscountType, &coupon.DiscountValue, &coupon.DiscountDescription, &coupon.DeviceID, &coupon.CreatedAt, &coupon.ValidUntil)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return coupon, nil
}

// CountCouponsForDeviceSince backs the per-device daily cap: coupons
// minted for this device since local midnight.
func (r *couponRepository) CountCouponsForDeviceSince(ctx context.Context, deviceID string, since time.Time) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*)
		FROM coupons
		WHERE device_id = $1 AND created_at >= $2
	`

	var count int

	err := r.DB.QueryRowContext(dbCtx, query, deviceID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("querying database: %w", err)
	}

	return count, nil
}

func (r *couponRepository) MarkCouponUsed(ctx context.Context, id string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE coupons
		SET status = $1
		WHERE id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, models.CouponStatusUsed, id)
	if err != nil {
		return fmt.Errorf("failed to update the coupon: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
