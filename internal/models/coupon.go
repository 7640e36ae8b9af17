package models

import "time"

type CouponStatus string

type DiscountType string

const (
	CouponStatusActive  CouponStatus = "active"
	CouponStatusUsed    CouponStatus = "used"
	CouponStatusExpired CouponStatus = "expired"

	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
	DiscountTypeFreeItem    DiscountType = "free_item"
)

type Coupon struct {
	ID                  string       `json:"id"`
	RestaurantID        string       `json:"restaurant_id"`
	CampaignID          string       `json:"campaign_id"`
	Code                string       `json:"code"`
	Status              CouponStatus `json:"status"`
	DiscountType        DiscountType `json:"discount_type"`
	DiscountValue       int64        `json:"discount_value"`
	DiscountDescription string       `json:"discount_description"`
	DeviceID            string       `json:"device_id"`
	CreatedAt           time.Time    `json:"created_at"`
	ValidUntil          time.Time    `json:"valid_until"`
}

// Campaign mints coupons probabilistically: a draw in [0,100) below
// WinProbability wins the configured reward.
type Campaign struct {
	ID                string       `json:"id"`
	RestaurantID      string       `json:"restaurant_id"`
	Name              string       `json:"name"`
	WinProbability    int          `json:"win_probability"`
	RewardType        DiscountType `json:"reward_type"`
	RewardValue       int64        `json:"reward_value"`
	RewardDescription string       `json:"reward_description"`
	ValidityDays      int          `json:"validity_days"`
	Active            bool         `json:"active"`
	CreatedAt         time.Time    `json:"created_at"`
}

type VerifyCouponRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Code         string `json:"code"          validate:"required"`
}

type VerifyCouponResponse struct {
	Valid  bool    `json:"valid"`
	Coupon *Coupon `json:"coupon,omitempty"`
	Error  string  `json:"error,omitempty"`
}

type GenerateCouponRequest struct {
	CampaignID   string `json:"campaign_id"   validate:"required"`
	RestaurantID string `json:"restaurant_id" validate:"required"`
	DeviceID     string `json:"device_id"     validate:"required"`
}

type GenerateCouponResponse struct {
	Won     bool    `json:"won"`
	Coupon  *Coupon `json:"coupon,omitempty"`
	Message string  `json:"message"`
}
