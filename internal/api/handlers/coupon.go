package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lumieats/table-ordering-platform/internal/api/middleware"
	"github.com/lumieats/table-ordering-platform/internal/models"
	service "github.com/lumieats/table-ordering-platform/internal/services"
	"github.com/lumieats/table-ordering-platform/internal/utils"
	"github.com/lumieats/table-ordering-platform/internal/utils/response"
	"log/slog"
)

type CouponHandler struct {
	couponService service.CouponService
	validator     *validator.Validate
}

func NewCouponHandler(couponService service.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
		validator:     validator.New(),
	}
}

func (h *CouponHandler) Verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.VerifyCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.couponService.VerifyCoupon(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *CouponHandler) Generate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.GenerateCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.couponService.GenerateCoupon(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Coupon draw completed",
			slog.String("campaign_id", req.CampaignID),
			slog.Bool("won", result.Won))

		response.Success(w, http.StatusOK, result)
	}
}
