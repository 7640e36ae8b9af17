package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lumieats/table-ordering-platform/internal/models"
	"github.com/lumieats/table-ordering-platform/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByRestaurant(ctx context.Context, restaurantID, tableID string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, restaurant_id, table_id, session_id, items, subtotal, discount_amount, total_amount, coupon_code, status, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, order.ID, order.RestaurantID, order.TableID, order.SessionID, itemsJSON, order.Subtotal, order.DiscountAmount, order.TotalAmount, order.CouponCode, order.Status, order.Note).Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, table_id, session_id, items, subtotal, discount_amount, total_amount, coupon_code, status, note, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	order := &models.Order{}

	var itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&order.ID, &order.RestaurantID, &order.TableID, &order.SessionID, &itemsJSON, &order.Subtotal, &order.DiscountAmount, &order.TotalAmount, &order.CouponCode, &order.Status, &order.Note, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByRestaurant(ctx context.Context, restaurantID, tableID string) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, table_id, session_id, items, subtotal, discount_amount, total_amount, coupon_code, status, note, created_at, updated_at
		FROM orders
		WHERE restaurant_id = $1 AND ($2 = '' OR table_id = $2)
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, restaurantID, tableID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var (
			order     models.Order
			itemsJSON []byte
		)

		if err := rows.Scan(&order.ID, &order.RestaurantID, &order.TableID, &order.SessionID, &itemsJSON, &order.Subtotal, &order.DiscountAmount, &order.TotalAmount, &order.CouponCode, &order.Status, &order.Note, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
		}

		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update the order: %w", err)
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
