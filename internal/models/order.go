package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lumieats/table-ordering-platform/internal/cart"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ProductID   string        `json:"product_id"`
	ProductName string        `json:"product_name"`
	Quantity    int           `json:"quantity"`
	UnitPrice   int64         `json:"unit_price"`
	Options     []cart.Option `json:"options,omitempty"`
	LineTotal   int64         `json:"line_total"`
}

type Order struct {
	ID             uuid.UUID   `json:"id"`
	RestaurantID   string      `json:"restaurant_id"`
	TableID        string      `json:"table_id"`
	SessionID      string      `json:"session_id"`
	Items          []OrderItem `json:"items"`
	Subtotal       int64       `json:"subtotal"`
	DiscountAmount int64       `json:"discount_amount"`
	TotalAmount    int64       `json:"total_amount"`
	CouponCode     string      `json:"coupon_code,omitempty"`
	Status         OrderStatus `json:"status"`
	Note           string      `json:"note,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type CheckoutRequest struct {
	Note string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending preparing served paid cancelled"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}
