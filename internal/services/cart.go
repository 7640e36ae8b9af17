package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lumieats/table-ordering-platform/internal/api/middleware"
	"github.com/lumieats/table-ordering-platform/internal/cart"
	"github.com/lumieats/table-ordering-platform/internal/config"
	appErrors "github.com/lumieats/table-ordering-platform/internal/errors"
	"github.com/lumieats/table-ordering-platform/internal/models"
	repository "github.com/lumieats/table-ordering-platform/internal/repositories"
	"log/slog"
)

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*models.CartResponse, error)
	GetState(ctx context.Context, sessionID string) (cart.State, error)
	SetContext(ctx context.Context, sessionID string, req *models.SetContextRequest) (*models.CartResponse, error)
	AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartResponse, error)
	UpdateQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.CartResponse, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*models.CartResponse, error)
	ClearCart(ctx context.Context, sessionID string, force bool) (*models.CartResponse, error)
	ApplyCoupon(ctx context.Context, sessionID string, req *models.ApplyCouponRequest) (*models.CartResponse, error)
	RemoveCoupon(ctx context.Context, sessionID string) (*models.CartResponse, error)
}

type cartService struct {
	store       cart.Store
	products    repository.ProductRepository
	restaurants repository.RestaurantRepository
	coupons     CouponService
	limits      cart.Limits
	maxAge      time.Duration
	now         func() time.Time
}

func NewCartService(store cart.Store, products repository.ProductRepository, restaurants repository.RestaurantRepository, coupons CouponService, cfg config.CartConfig) CartService {
	return &cartService{
		store:       store,
		products:    products,
		restaurants: restaurants,
		coupons:     coupons,
		limits:      cart.Limits{MaxItems: cfg.MaxItems, MaxLineQuantity: cfg.MaxLineQuantity},
		maxAge:      cfg.SnapshotMaxAge,
		now:         time.Now,
	}
}

// load reads the persisted snapshot for the session. Missing, stale,
// corrupt or unreadable snapshots all resolve to an empty cart rather
// than an error the caller has to handle.
func (s *cartService) load(ctx context.Context, sessionID string) cart.State {
	logger := middleware.LoggerFromContext(ctx)

	data, found, err := s.store.Load(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to load cart snapshot, starting empty", slog.String("session_id", sessionID), slog.Any("error", err))
		return cart.State{}
	}

	if !found {
		return cart.State{}
	}

	state, ok := cart.DecodeSnapshot(data, s.now(), s.maxAge)
	if !ok {
		logger.Info("Cart snapshot stale or corrupt, resetting", slog.String("session_id", sessionID))
	}

	return state
}

// save writes through after every mutation. A storage failure degrades
// to an unpersisted cart for this request; the computed state is still
// returned to the caller.
func (s *cartService) save(ctx context.Context, sessionID string, state cart.State) {
	logger := middleware.LoggerFromContext(ctx)

	data, err := cart.EncodeSnapshot(state, s.now())
	if err != nil {
		logger.Error("Failed to encode cart snapshot", slog.String("session_id", sessionID), slog.Any("error", err))
		return
	}

	if err := s.store.Save(ctx, sessionID, data); err != nil {
		logger.Error("Failed to persist cart snapshot", slog.String("session_id", sessionID), slog.Any("error", err))
	}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*models.CartResponse, error) {
	return models.NewCartResponse(s.load(ctx, sessionID)), nil
}

func (s *cartService) GetState(ctx context.Context, sessionID string) (cart.State, error) {
	return s.load(ctx, sessionID), nil
}

func (s *cartService) SetContext(ctx context.Context, sessionID string, req *models.SetContextRequest) (*models.CartResponse, error) {

	if _, err := s.restaurants.GetTable(ctx, req.RestaurantID, req.TableID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Table introuvable").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to resolve table").WithError(err)
	}

	state := s.load(ctx, sessionID).SetContext(req.RestaurantID, req.TableID)
	s.save(ctx, sessionID, state)

	return models.NewCartResponse(state), nil
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartResponse, error) {

	product, err := s.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Produit introuvable").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if !product.Available {
		return nil, appErrors.BadRequestError("Ce produit n'est plus disponible")
	}

	state := s.load(ctx, sessionID)

	state, err = state.AddItem(cart.Product{
		ID:           product.ID,
		RestaurantID: product.RestaurantID,
		Name:         product.Name,
		Price:        product.Price,
	}, req.Quantity, req.Options, s.limits)
	if err != nil {
		return nil, err
	}

	s.save(ctx, sessionID, state)

	return models.NewCartResponse(state), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.CartResponse, error) {

	state, err := s.load(ctx, sessionID).UpdateQuantity(req.ProductID, req.Quantity, s.limits)
	if err != nil {
		return nil, err
	}

	s.save(ctx, sessionID, state)

	return models.NewCartResponse(state), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID string) (*models.CartResponse, error) {

	state := s.load(ctx, sessionID).RemoveItem(productID)
	s.save(ctx, sessionID, state)

	return models.NewCartResponse(state), nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string, force bool) (*models.CartResponse, error) {

	state := s.load(ctx, sessionID)

	if !force && len(state.Items) > 0 {
		middleware.LoggerFromContext(ctx).Warn("Clearing a non-empty cart",
			slog.String("session_id", sessionID),
			slog.Int("items", state.TotalItems()))
	}

	state = state.Clear()
	s.save(ctx, sessionID, state)

	return models.NewCartResponse(state), nil
}

// ApplyCoupon verifies the code against the coupon collaborator before
// touching the aggregate; the engine itself never re-validates.
func (s *cartService) ApplyCoupon(ctx context.Context, sessionID string, req *models.ApplyCouponRequest) (*models.CartResponse, error) {

	state := s.load(ctx, sessionID)

	if !state.HasContext() {
		return nil, appErrors.NoContextError()
	}

	result, err := s.coupons.VerifyCoupon(ctx, &models.VerifyCouponRequest{
		RestaurantID: state.RestaurantID,
		Code:         req.Code,
	})
	if err != nil {
		return nil, err
	}

	if !result.Valid {
		return nil, appErrors.BadRequestError(result.Error)
	}

	state = state.ApplyCoupon(cart.AppliedCoupon{
		ID:            result.Coupon.ID,
		Code:          result.Coupon.Code,
		DiscountType:  cart.DiscountType(result.Coupon.DiscountType),
		DiscountValue: result.Coupon.DiscountValue,
		Description:   result.Coupon.DiscountDescription,
	})

	s.save(ctx, sessionID, state)

	return models.NewCartResponse(state), nil
}

func (s *cartService) RemoveCoupon(ctx context.Context, sessionID string) (*models.CartResponse, error) {

	state := s.load(ctx, sessionID).RemoveCoupon()
	s.save(ctx, sessionID, state)

	return models.NewCartResponse(state), nil
}
