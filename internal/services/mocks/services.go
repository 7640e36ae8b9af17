// Package mocks provides testify mocks for the service interfaces,
// consumed by the handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumieats/table-ordering-platform/internal/cart"
	"github.com/lumieats/table-ordering-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, sessionID string) (*models.CartResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *CartService) GetState(ctx context.Context, sessionID string) (cart.State, error) {
	args := m.Called(ctx, sessionID)

	return args.Get(0).(cart.State), args.Error(1)
}

func (m *CartService) SetContext(ctx context.Context, sessionID string, req *models.SetContextRequest) (*models.CartResponse, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartResponse, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.CartResponse, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*models.CartResponse, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *CartService) ClearCart(ctx context.Context, sessionID string, force bool) (*models.CartResponse, error) {
	args := m.Called(ctx, sessionID, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *CartService) ApplyCoupon(ctx context.Context, sessionID string, req *models.ApplyCouponRequest) (*models.CartResponse, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *CartService) RemoveCoupon(ctx context.Context, sessionID string) (*models.CartResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartResponse), args.Error(1)
}

type CouponService struct {
	mock.Mock
}

func (m *CouponService) VerifyCoupon(ctx context.Context, req *models.VerifyCouponRequest) (*models.VerifyCouponResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.VerifyCouponResponse), args.Error(1)
}

func (m *CouponService) GenerateCoupon(ctx context.Context, req *models.GenerateCouponRequest) (*models.GenerateCouponResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.GenerateCouponResponse), args.Error(1)
}

func (m *CouponService) RedeemCoupon(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type ProductService struct {
	mock.Mock
}

func (m *ProductService) GetMenu(ctx context.Context, restaurantID string) (*models.Menu, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Menu), args.Error(1)
}

func (m *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Category), args.Error(1)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.Order, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderService) ListOrders(ctx context.Context, restaurantID, tableID string) (*models.OrderListResponse, error) {
	args := m.Called(ctx, restaurantID, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OrderListResponse), args.Error(1)
}

func (m *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

type FeedbackService struct {
	mock.Mock
}

func (m *FeedbackService) Submit(ctx context.Context, req *models.SubmitFeedbackRequest) (*models.SubmitFeedbackResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.SubmitFeedbackResponse), args.Error(1)
}

func (m *FeedbackService) ListInternalReviews(ctx context.Context, restaurantID string) ([]models.InternalReview, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.InternalReview), args.Error(1)
}

func (m *FeedbackService) ReplyToReview(ctx context.Context, id uuid.UUID, req *models.ReplyToReviewRequest) error {
	args := m.Called(ctx, id, req)

	return args.Error(0)
}

type ChatService struct {
	mock.Mock
}

func (m *ChatService) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ChatResponse), args.Error(1)
}

func (m *ChatService) ChatStream(ctx context.Context, req *models.ChatRequest, fn func(delta string) error) error {
	args := m.Called(ctx, req, fn)

	return args.Error(0)
}

func (m *ChatService) Upsell(ctx context.Context, req *models.UpsellRequest) (*models.UpsellSuggestion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.UpsellSuggestion), args.Error(1)
}
