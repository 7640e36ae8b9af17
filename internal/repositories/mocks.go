package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumieats/table-ordering-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// Testify mocks for the repository interfaces, used by the service
// tests.

type MockRestaurantRepository struct {
	mock.Mock
}

func NewMockRestaurantRepository() *MockRestaurantRepository {
	return &MockRestaurantRepository{}
}

func (m *MockRestaurantRepository) GetRestaurantByID(ctx context.Context, id string) (*models.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) GetTable(ctx context.Context, restaurantID, tableID string) (*models.Table, error) {
	args := m.Called(ctx, restaurantID, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Table), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *MockProductRepository) ListProductsByRestaurant(ctx context.Context, restaurantID string) ([]models.Product, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)

	return args.Error(0)
}

func (m *MockProductRepository) ListCategoriesByRestaurant(ctx context.Context, restaurantID string) ([]models.Category, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Category), args.Error(1)
}

type MockCouponRepository struct {
	mock.Mock
}

func NewMockCouponRepository() *MockCouponRepository {
	return &MockCouponRepository{}
}

func (m *MockCouponRepository) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	args := m.Called(ctx, coupon)

	return args.Error(0)
}

func (m *MockCouponRepository) GetCouponByCode(ctx context.Context, restaurantID, code string) (*models.Coupon, error) {
	args := m.Called(ctx, restaurantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) CountCouponsForDeviceSince(ctx context.Context, deviceID string, since time.Time) (int, error) {
	args := m.Called(ctx, deviceID, since)

	return args.Int(0), args.Error(1)
}

func (m *MockCouponRepository) MarkCouponUsed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type MockCampaignRepository struct {
	mock.Mock
}

func NewMockCampaignRepository() *MockCampaignRepository {
	return &MockCampaignRepository{}
}

func (m *MockCampaignRepository) GetCampaignByID(ctx context.Context, id string) (*models.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Campaign), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{}
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByRestaurant(ctx context.Context, restaurantID, tableID string) ([]models.Order, error) {
	args := m.Called(ctx, restaurantID, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

type MockFeedbackRepository struct {
	mock.Mock
}

func NewMockFeedbackRepository() *MockFeedbackRepository {
	return &MockFeedbackRepository{}
}

func (m *MockFeedbackRepository) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	args := m.Called(ctx, feedback)

	return args.Error(0)
}

func (m *MockFeedbackRepository) CreateInternalReview(ctx context.Context, review *models.InternalReview) error {
	args := m.Called(ctx, review)

	return args.Error(0)
}

func (m *MockFeedbackRepository) ReplyToInternalReview(ctx context.Context, id uuid.UUID, reply string, resolved bool) error {
	args := m.Called(ctx, id, reply, resolved)

	return args.Error(0)
}

func (m *MockFeedbackRepository) ListInternalReviews(ctx context.Context, restaurantID string) ([]models.InternalReview, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.InternalReview), args.Error(1)
}
