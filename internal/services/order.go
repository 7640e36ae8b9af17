package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumieats/table-ordering-platform/internal/api/middleware"
	appErrors "github.com/lumieats/table-ordering-platform/internal/errors"
	"github.com/lumieats/table-ordering-platform/internal/models"
	repository "github.com/lumieats/table-ordering-platform/internal/repositories"
	"log/slog"
)

type OrderService interface {
	Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, restaurantID, tableID string) (*models.OrderListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orders  repository.OrderRepository
	coupons CouponService
	carts   CartService
	now     func() time.Time
}

func NewOrderService(orders repository.OrderRepository, coupons CouponService, carts CartService) OrderService {
	return &orderService{
		orders:  orders,
		coupons: coupons,
		carts:   carts,
		now:     time.Now,
	}
}

// Checkout freezes the session's cart into an order. Totals are taken
// from the cart engine at the moment of checkout, then the coupon is
// consumed and the cart emptied (context kept for a follow-up round).
func (s *orderService) Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	state, err := s.carts.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !state.HasContext() {
		return nil, appErrors.NoContextError()
	}

	if len(state.Items) == 0 {
		return nil, appErrors.BadRequestError("Le panier est vide")
	}

	items := make([]models.OrderItem, 0, len(state.Items))
	for _, line := range state.Items {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Options:     line.Options,
			LineTotal:   line.LineTotal(),
		})
	}

	now := s.now()
	order := &models.Order{
		ID:             uuid.New(),
		RestaurantID:   state.RestaurantID,
		TableID:        state.TableID,
		SessionID:      sessionID,
		Items:          items,
		Subtotal:       state.Subtotal(),
		DiscountAmount: state.DiscountAmount(),
		TotalAmount:    state.TotalAmount(),
		Status:         models.OrderStatusPending,
		Note:           req.Note,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if state.AppliedCoupon != nil {
		order.CouponCode = state.AppliedCoupon.Code
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	// The order is already persisted at this point; a failed redemption
	// is logged for reconciliation rather than failing the checkout.
	if state.AppliedCoupon != nil {
		if err := s.coupons.RedeemCoupon(ctx, state.AppliedCoupon.ID); err != nil {
			logger.Error("Failed to redeem coupon after checkout",
				slog.String("order_id", order.ID.String()),
				slog.String("coupon_id", state.AppliedCoupon.ID),
				slog.Any("error", err))
		}
	}

	if _, err := s.carts.ClearCart(ctx, sessionID, true); err != nil {
		logger.Error("Failed to clear cart after checkout",
			slog.String("order_id", order.ID.String()),
			slog.Any("error", err))
	}

	logger.Info("Order created",
		slog.String("order_id", order.ID.String()),
		slog.String("restaurant_id", order.RestaurantID),
		slog.String("table_id", order.TableID),
		slog.Int64("total_amount", order.TotalAmount))

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Commande introuvable").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, restaurantID, tableID string) (*models.OrderListResponse, error) {

	orders, err := s.orders.ListOrdersByRestaurant(ctx, restaurantID, tableID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list orders").WithError(err)
	}

	return &models.OrderListResponse{Orders: orders, Total: len(orders)}, nil
}

// orderTransitions is the lifecycle of an order: pending → preparing →
// served → paid, with cancellation possible until the order is paid.
// Paid and cancelled are terminal.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusServed, models.OrderStatusCancelled},
	models.OrderStatusServed:    {models.OrderStatusPaid, models.OrderStatusCancelled},
}

func canTransition(from, to models.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canTransition(order.Status, status) {
		return nil, appErrors.BadRequestError("Ce changement de statut n'est pas autorisé").
			WithDetail(fmt.Sprintf("transition de %s vers %s refusée", order.Status, status))
	}

	if err := s.orders.UpdateOrderStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Commande introuvable").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	return s.GetOrder(ctx, id)
}
