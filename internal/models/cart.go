package models

import "github.com/lumieats/table-ordering-platform/internal/cart"

type SetContextRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	TableID      string `json:"table_id"      validate:"required"`
}

// Quantity is validated by the cart engine so a non-positive value
// surfaces as CART_INVALID_QUANTITY rather than a generic DTO error.
type AddItemRequest struct {
	ProductID string        `json:"product_id" validate:"required"`
	Quantity  int           `json:"quantity"`
	Options   []cart.Option `json:"options,omitempty"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// CartResponse is the aggregate plus its computed totals; totals are
// derived fresh from the lines on every build.
type CartResponse struct {
	Items          []cart.Line         `json:"items"`
	RestaurantID   string              `json:"restaurant_id,omitempty"`
	TableID        string              `json:"table_id,omitempty"`
	AppliedCoupon  *cart.AppliedCoupon `json:"applied_coupon,omitempty"`
	TotalItems     int                 `json:"total_items"`
	Subtotal       int64               `json:"subtotal"`
	DiscountAmount int64               `json:"discount_amount"`
	TotalAmount    int64               `json:"total_amount"`
}

func NewCartResponse(state cart.State) *CartResponse {
	items := state.Items
	if items == nil {
		items = []cart.Line{}
	}

	return &CartResponse{
		Items:          items,
		RestaurantID:   state.RestaurantID,
		TableID:        state.TableID,
		AppliedCoupon:  state.AppliedCoupon,
		TotalItems:     state.TotalItems(),
		Subtotal:       state.Subtotal(),
		DiscountAmount: state.DiscountAmount(),
		TotalAmount:    state.TotalAmount(),
	}
}
