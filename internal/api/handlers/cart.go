package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lumieats/table-ordering-platform/internal/api/middleware"
	appErrors "github.com/lumieats/table-ordering-platform/internal/errors"
	"github.com/lumieats/table-ordering-platform/internal/models"
	service "github.com/lumieats/table-ordering-platform/internal/services"
	"github.com/lumieats/table-ordering-platform/internal/utils"
	"github.com/lumieats/table-ordering-platform/internal/utils/response"
	"log/slog"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// session returns the session ID or writes the error. Handlers sit
// behind RequireSession, this is the guard for direct invocation.
func session(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.Error(w, appErrors.BadRequestError("Session ID is required"))
	}

	return sessionID, ok
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := session(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), sessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) SetContext() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := session(w, r)
		if !ok {
			return
		}

		var req models.SetContextRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.SetContext(r.Context(), sessionID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Cart context set",
			slog.String("restaurant_id", req.RestaurantID),
			slog.String("table_id", req.TableID))

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := session(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), sessionID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := session(w, r)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), sessionID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := session(w, r)
		if !ok {
			return
		}

		productID := r.PathValue("productId")
		if productID == "" {
			response.Error(w, appErrors.BadRequestError("Product ID is required"))
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), sessionID, productID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := session(w, r)
		if !ok {
			return
		}

		force := r.URL.Query().Get("force") == "true"

		cart, err := h.cartService.ClearCart(r.Context(), sessionID, force)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ApplyCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := session(w, r)
		if !ok {
			return
		}

		var req models.ApplyCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.ApplyCoupon(r.Context(), sessionID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := session(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.RemoveCoupon(r.Context(), sessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}
