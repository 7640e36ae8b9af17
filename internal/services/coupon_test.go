package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lumieats/table-ordering-platform/internal/config"
	appErrors "github.com/lumieats/table-ordering-platform/internal/errors"
	"github.com/lumieats/table-ordering-platform/internal/models"
	repository "github.com/lumieats/table-ordering-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)

func newTestCouponService(coupons *repository.MockCouponRepository, campaigns *repository.MockCampaignRepository, draw float64) *couponService {
	return &couponService{
		coupons:   coupons,
		campaigns: campaigns,
		cfg:       config.CouponConfig{DailyDeviceLimit: 5, CodePrefix: "LUMI-"},
		now:       func() time.Time { return testNow },
		draw:      func() float64 { return draw },
	}
}

func TestVerifyCoupon(t *testing.T) {
	ctx := context.Background()

	baseCoupon := func() *models.Coupon {
		return &models.Coupon{
			ID:            "c-1",
			RestaurantID:  "r-1",
			Code:          "LUMI-AB12C",
			Status:        models.CouponStatusActive,
			DiscountType:  models.DiscountTypePercentage,
			DiscountValue: 15,
			CreatedAt:     testNow.AddDate(0, 0, -1),
			ValidUntil:    testNow.AddDate(0, 0, 6),
		}
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := repository.NewMockCouponRepository()
		svc := newTestCouponService(mockRepo, repository.NewMockCampaignRepository(), 0)
		coupon := baseCoupon()
		mockRepo.On("GetCouponByCode", ctx, "r-1", "LUMI-AB12C").Return(coupon, nil).Once()

		// Act
		resp, err := svc.VerifyCoupon(ctx, &models.VerifyCouponRequest{RestaurantID: "r-1", Code: "LUMI-AB12C"})

		// Assert
		assert.NoError(t, err)
		assert.True(t, resp.Valid)
		assert.Equal(t, coupon, resp.Coupon)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Code Normalized Before Lookup", func(t *testing.T) {
		// Arrange
		mockRepo := repository.NewMockCouponRepository()
		svc := newTestCouponService(mockRepo, repository.NewMockCampaignRepository(), 0)
		mockRepo.On("GetCouponByCode", ctx, "r-1", "LUMI-AB12C").Return(baseCoupon(), nil).Once()

		// Act
		resp, err := svc.VerifyCoupon(ctx, &models.VerifyCouponRequest{RestaurantID: "r-1", Code: "  lumi-ab12c "})

		// Assert
		assert.NoError(t, err)
		assert.True(t, resp.Valid)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := repository.NewMockCouponRepository()
		svc := newTestCouponService(mockRepo, repository.NewMockCampaignRepository(), 0)
		mockRepo.On("GetCouponByCode", ctx, "r-1", "NOPE1").Return(nil, sql.ErrNoRows).Once()

		// Act
		resp, err := svc.VerifyCoupon(ctx, &models.VerifyCouponRequest{RestaurantID: "r-1", Code: "NOPE1"})

		// Assert
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Already Used", func(t *testing.T) {
		// Arrange
		mockRepo := repository.NewMockCouponRepository()
		svc := newTestCouponService(mockRepo, repository.NewMockCampaignRepository(), 0)
		coupon := baseCoupon()
		coupon.Status = models.CouponStatusUsed
		mockRepo.On("GetCouponByCode", ctx, "r-1", "LUMI-AB12C").Return(coupon, nil).Once()

		// Act
		resp, err := svc.VerifyCoupon(ctx, &models.VerifyCouponRequest{RestaurantID: "r-1", Code: "LUMI-AB12C"})

		// Assert
		assert.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.Equal(t, "Ce coupon a déjà été utilisé", resp.Error)
	})

	t.Run("Failure - Expired", func(t *testing.T) {
		// Arrange
		mockRepo := repository.NewMockCouponRepository()
		svc := newTestCouponService(mockRepo, repository.NewMockCampaignRepository(), 0)
		coupon := baseCoupon()
		coupon.ValidUntil = testNow.AddDate(0, 0, -1)
		mockRepo.On("GetCouponByCode", ctx, "r-1", "LUMI-AB12C").Return(coupon, nil).Once()

		// Act
		resp, err := svc.VerifyCoupon(ctx, &models.VerifyCouponRequest{RestaurantID: "r-1", Code: "LUMI-AB12C"})

		// Assert
		assert.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.Equal(t, "Ce coupon a expiré", resp.Error)
	})

	t.Run("Failure - Won Today", func(t *testing.T) {
		// Arrange: created this morning, still inside its validity
		// window, but the same-day rule blocks it until tomorrow.
		mockRepo := repository.NewMockCouponRepository()
		svc := newTestCouponService(mockRepo, repository.NewMockCampaignRepository(), 0)
		coupon := baseCoupon()
		coupon.CreatedAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
		mockRepo.On("GetCouponByCode", ctx, "r-1", "LUMI-AB12C").Return(coupon, nil).Once()

		// Act
		resp, err := svc.VerifyCoupon(ctx, &models.VerifyCouponRequest{RestaurantID: "r-1", Code: "LUMI-AB12C"})

		// Assert
		assert.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.Equal(t, "Ce coupon sera utilisable à partir de demain", resp.Error)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockRepo := repository.NewMockCouponRepository()
		svc := newTestCouponService(mockRepo, repository.NewMockCampaignRepository(), 0)
		mockRepo.On("GetCouponByCode", ctx, "r-1", "LUMI-AB12C").Return(nil, errors.New("connection refused")).Once()

		// Act
		resp, err := svc.VerifyCoupon(ctx, &models.VerifyCouponRequest{RestaurantID: "r-1", Code: "LUMI-AB12C"})

		// Assert
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestGenerateCoupon(t *testing.T) {
	ctx := context.Background()

	req := &models.GenerateCouponRequest{
		CampaignID:   "camp-1",
		RestaurantID: "r-1",
		DeviceID:     "device-1",
	}

	campaign := &models.Campaign{
		ID:                "camp-1",
		RestaurantID:      "r-1",
		Name:              "Roue de la fortune",
		WinProbability:    30,
		RewardType:        models.DiscountTypePercentage,
		RewardValue:       15,
		RewardDescription: "15% de réduction",
		ValidityDays:      7,
		Active:            true,
	}

	startOfToday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	t.Run("Success - Win", func(t *testing.T) {
		// Arrange: a draw of 0.1 lands under the 30% probability.
		mockCoupons := repository.NewMockCouponRepository()
		mockCampaigns := repository.NewMockCampaignRepository()
		svc := newTestCouponService(mockCoupons, mockCampaigns, 0.1)
		mockCoupons.On("CountCouponsForDeviceSince", ctx, "device-1", startOfToday).Return(2, nil).Once()
		mockCampaigns.On("GetCampaignByID", ctx, "camp-1").Return(campaign, nil).Once()
		mockCoupons.On("CreateCoupon", ctx, mock.AnythingOfType("*models.Coupon")).Return(nil).Once()

		// Act
		resp, err := svc.GenerateCoupon(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.True(t, resp.Won)
		assert.NotNil(t, resp.Coupon)
		assert.True(t, strings.HasPrefix(resp.Coupon.Code, "LUMI-"))
		assert.Len(t, resp.Coupon.Code, len("LUMI-")+5)
		assert.Equal(t, models.CouponStatusActive, resp.Coupon.Status)
		assert.Equal(t, "device-1", resp.Coupon.DeviceID)
		assert.Equal(t, testNow.AddDate(0, 0, 7), resp.Coupon.ValidUntil)
		mockCoupons.AssertExpectations(t)
		mockCampaigns.AssertExpectations(t)
	})

	t.Run("Success - Lose", func(t *testing.T) {
		// Arrange: 0.95 is above the 30% probability; nothing is minted.
		mockCoupons := repository.NewMockCouponRepository()
		mockCampaigns := repository.NewMockCampaignRepository()
		svc := newTestCouponService(mockCoupons, mockCampaigns, 0.95)
		mockCoupons.On("CountCouponsForDeviceSince", ctx, "device-1", startOfToday).Return(0, nil).Once()
		mockCampaigns.On("GetCampaignByID", ctx, "camp-1").Return(campaign, nil).Once()

		// Act
		resp, err := svc.GenerateCoupon(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.False(t, resp.Won)
		assert.Nil(t, resp.Coupon)
		mockCoupons.AssertNotCalled(t, "CreateCoupon", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Daily Limit Reached", func(t *testing.T) {
		// Arrange: the fifth attempt today exhausts the device quota;
		// the campaign is never even fetched.
		mockCoupons := repository.NewMockCouponRepository()
		mockCampaigns := repository.NewMockCampaignRepository()
		svc := newTestCouponService(mockCoupons, mockCampaigns, 0.1)
		mockCoupons.On("CountCouponsForDeviceSince", ctx, "device-1", startOfToday).Return(5, nil).Once()

		// Act
		resp, err := svc.GenerateCoupon(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.False(t, resp.Won)
		assert.Contains(t, resp.Message, "limite")
		mockCampaigns.AssertNotCalled(t, "GetCampaignByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Campaign Not Found", func(t *testing.T) {
		// Arrange
		mockCoupons := repository.NewMockCouponRepository()
		mockCampaigns := repository.NewMockCampaignRepository()
		svc := newTestCouponService(mockCoupons, mockCampaigns, 0.1)
		mockCoupons.On("CountCouponsForDeviceSince", ctx, "device-1", startOfToday).Return(0, nil).Once()
		mockCampaigns.On("GetCampaignByID", ctx, "camp-1").Return(nil, sql.ErrNoRows).Once()

		// Act
		resp, err := svc.GenerateCoupon(ctx, req)

		// Assert
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Inactive Campaign", func(t *testing.T) {
		// Arrange
		mockCoupons := repository.NewMockCouponRepository()
		mockCampaigns := repository.NewMockCampaignRepository()
		svc := newTestCouponService(mockCoupons, mockCampaigns, 0.1)
		inactive := *campaign
		inactive.Active = false
		mockCoupons.On("CountCouponsForDeviceSince", ctx, "device-1", startOfToday).Return(0, nil).Once()
		mockCampaigns.On("GetCampaignByID", ctx, "camp-1").Return(&inactive, nil).Once()

		// Act
		resp, err := svc.GenerateCoupon(ctx, req)

		// Assert
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestRedeemCoupon(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := repository.NewMockCouponRepository()
		svc := newTestCouponService(mockRepo, repository.NewMockCampaignRepository(), 0)
		mockRepo.On("MarkCouponUsed", ctx, "c-1").Return(nil).Once()

		// Act
		err := svc.RedeemCoupon(ctx, "c-1")

		// Assert
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := repository.NewMockCouponRepository()
		svc := newTestCouponService(mockRepo, repository.NewMockCampaignRepository(), 0)
		mockRepo.On("MarkCouponUsed", ctx, "c-404").Return(sql.ErrNoRows).Once()

		// Act
		err := svc.RedeemCoupon(ctx, "c-404")

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestNewCode(t *testing.T) {
	// Arrange
	svc := newTestCouponService(repository.NewMockCouponRepository(), repository.NewMockCampaignRepository(), 0)

	// Act
	code, err := svc.newCode()

	// Assert
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "LUMI-"))
	suffix := strings.TrimPrefix(code, "LUMI-")
	assert.Len(t, suffix, 5)
	for _, r := range suffix {
		assert.Contains(t, codeAlphabet, string(r))
	}
}
