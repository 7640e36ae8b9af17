package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	mrand "math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumieats/table-ordering-platform/internal/api/middleware"
	"github.com/lumieats/table-ordering-platform/internal/config"
	appErrors "github.com/lumieats/table-ordering-platform/internal/errors"
	"github.com/lumieats/table-ordering-platform/internal/models"
	repository "github.com/lumieats/table-ordering-platform/internal/repositories"
	"log/slog"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const codeLength = 5

type CouponService interface {
	VerifyCoupon(ctx context.Context, req *models.VerifyCouponRequest) (*models.VerifyCouponResponse, error)
	GenerateCoupon(ctx context.Context, req *models.GenerateCouponRequest) (*models.GenerateCouponResponse, error)
	RedeemCoupon(ctx context.Context, id string) error
}

type couponService struct {
	coupons   repository.CouponRepository
	campaigns repository.CampaignRepository
	cfg       config.CouponConfig
	now       func() time.Time
	draw      func() float64
}

func NewCouponService(coupons repository.CouponRepository, campaigns repository.CampaignRepository, cfg config.CouponConfig) CouponService {
	return &couponService{
		coupons:   coupons,
		campaigns: campaigns,
		cfg:       cfg,
		now:       time.Now,
		draw:      mrand.Float64,
	}
}

// VerifyCoupon checks a code against the redemption rules. Business
// rejections come back as Valid=false with a user-facing reason;
// an unknown code and storage failures are returned as errors.
func (s *couponService) VerifyCoupon(ctx context.Context, req *models.VerifyCouponRequest) (*models.VerifyCouponResponse, error) {

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	coupon, err := s.coupons.GetCouponByCode(ctx, req.RestaurantID, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Code promo introuvable").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to look up coupon").WithError(err)
	}

	now := s.now()

	if coupon.Status == models.CouponStatusUsed {
		return invalidCoupon("Ce coupon a déjà été utilisé"), nil
	}

	if coupon.Status == models.CouponStatusExpired || now.After(coupon.ValidUntil) {
		return invalidCoupon("Ce coupon a expiré"), nil
	}

	// A coupon won today cannot be spent on the same visit; it becomes
	// usable the next local calendar day.
	if sameCalendarDay(coupon.CreatedAt, now) {
		return invalidCoupon("Ce coupon sera utilisable à partir de demain"), nil
	}

	if coupon.Status != models.CouponStatusActive {
		return invalidCoupon("Ce coupon n'est pas valide"), nil
	}

	return &models.VerifyCouponResponse{Valid: true, Coupon: coupon}, nil
}

// GenerateCoupon runs one draw of the campaign wheel for a device.
func (s *couponService) GenerateCoupon(ctx context.Context, req *models.GenerateCouponRequest) (*models.GenerateCouponResponse, error) {

	now := s.now()

	count, err := s.coupons.CountCouponsForDeviceSince(ctx, req.DeviceID, startOfDay(now))
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to count device attempts").WithError(err)
	}

	if count >= s.cfg.DailyDeviceLimit {
		return &models.GenerateCouponResponse{
			Won:     false,
			Message: "Vous avez atteint la limite de tentatives pour aujourd'hui, revenez demain !",
		}, nil
	}

	campaign, err := s.campaigns.GetCampaignByID(ctx, req.CampaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Campagne introuvable").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch campaign").WithError(err)
	}

	if !campaign.Active || campaign.RestaurantID != req.RestaurantID {
		return nil, appErrors.BadRequestError("Cette campagne n'est plus active")
	}

	if s.draw()*100 >= float64(campaign.WinProbability) {
		return &models.GenerateCouponResponse{
			Won:     false,
			Message: "Pas de chance cette fois-ci, retentez demain !",
		}, nil
	}

	code, err := s.newCode()
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate coupon code").WithError(err)
	}

	coupon := &models.Coupon{
		ID:                  uuid.NewString(),
		RestaurantID:        campaign.RestaurantID,
		CampaignID:          campaign.ID,
		Code:                code,
		Status:              models.CouponStatusActive,
		DiscountType:        campaign.RewardType,
		DiscountValue:       campaign.RewardValue,
		DiscountDescription: campaign.RewardDescription,
		DeviceID:            req.DeviceID,
		CreatedAt:           now,
		ValidUntil:          now.AddDate(0, 0, campaign.ValidityDays),
	}

	if err := s.coupons.CreateCoupon(ctx, coupon); err != nil {
		return nil, appErrors.DatabaseError("Failed to persist coupon").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Coupon won",
		slog.String("campaign_id", campaign.ID),
		slog.String("code", coupon.Code))

	return &models.GenerateCouponResponse{
		Won:     true,
		Coupon:  coupon,
		Message: fmt.Sprintf("Félicitations, vous avez gagné : %s !", campaign.RewardDescription),
	}, nil
}

func (s *couponService) RedeemCoupon(ctx context.Context, id string) error {

	if err := s.coupons.MarkCouponUsed(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Code promo introuvable").WithError(err)
		}
		return appErrors.DatabaseError("Failed to mark coupon as used").WithError(err)
	}

	return nil
}

// newCode mints a short human-readable code with the configured prefix.
func (s *couponService) newCode() (string, error) {

	var b strings.Builder
	b.WriteString(s.cfg.CodePrefix)

	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}

	return b.String(), nil
}

func invalidCoupon(reason string) *models.VerifyCouponResponse {
	return &models.VerifyCouponResponse{Valid: false, Error: reason}
}

// startOfDay truncates to local midnight; the daily device quota and
// the same-day rule both run on the restaurant's wall clock.
func startOfDay(t time.Time) time.Time {
	t = t.In(time.Local)

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()

	return ay == by && am == bm && ad == bd
}
