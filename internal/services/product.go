package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumieats/table-ordering-platform/internal/api/middleware"
	"github.com/lumieats/table-ordering-platform/internal/cache"
	"github.com/lumieats/table-ordering-platform/internal/config"
	appErrors "github.com/lumieats/table-ordering-platform/internal/errors"
	"github.com/lumieats/table-ordering-platform/internal/models"
	repository "github.com/lumieats/table-ordering-platform/internal/repositories"
	"log/slog"
)

type ProductService interface {
	GetMenu(ctx context.Context, restaurantID string) (*models.Menu, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
}

type productService struct {
	products    repository.ProductRepository
	restaurants repository.RestaurantRepository
	cache       cache.Cache
	menuTTL     time.Duration
}

func NewProductService(products repository.ProductRepository, restaurants repository.RestaurantRepository, c cache.Cache, cfg config.CacheConfig) ProductService {
	return &productService{
		products:    products,
		restaurants: restaurants,
		cache:       c,
		menuTTL:     cfg.MenuTTL,
	}
}

// GetMenu assembles the full catalog for one restaurant. The result is
// cached whole; a cache failure falls through to the database.
func (s *productService) GetMenu(ctx context.Context, restaurantID string) (*models.Menu, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.MenuKeyPrefix, restaurantID)

	var menu models.Menu

	found, err := s.cache.Get(ctx, key, &menu)
	if err != nil {
		logger.Warn("Menu cache read failed", slog.String("restaurant_id", restaurantID), slog.Any("error", err))
	} else if found {
		return &menu, nil
	}

	restaurant, err := s.restaurants.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Restaurant introuvable").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch restaurant").WithError(err)
	}

	categories, err := s.products.ListCategoriesByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list categories").WithError(err)
	}

	products, err := s.products.ListProductsByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list products").WithError(err)
	}

	menu = models.Menu{
		Restaurant: restaurant,
		Categories: categories,
		Products:   products,
	}

	if err := s.cache.Set(ctx, key, &menu, s.menuTTL); err != nil {
		logger.Warn("Menu cache write failed", slog.String("restaurant_id", restaurantID), slog.Any("error", err))
	}

	return &menu, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*models.Product, error) {

	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Produit introuvable").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	now := time.Now()
	product := &models.Product{
		ID:           uuid.NewString(),
		RestaurantID: req.RestaurantID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		Available:    available,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.products.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	s.invalidateMenu(ctx, req.RestaurantID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Produit introuvable").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Available != nil {
		product.Available = *req.Available
	}
	product.UpdatedAt = time.Now()

	if err := s.products.UpdateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidateMenu(ctx, product.RestaurantID)

	return product, nil
}

func (s *productService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	now := time.Now()
	category := &models.Category{
		ID:           uuid.NewString(),
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Position:     req.Position,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.products.CreateCategory(ctx, category); err != nil {
		return nil, appErrors.DatabaseError("Failed to create category").WithError(err)
	}

	s.invalidateMenu(ctx, req.RestaurantID)

	return category, nil
}

func (s *productService) invalidateMenu(ctx context.Context, restaurantID string) {
	key := cache.Key(cache.MenuKeyPrefix, restaurantID)

	if err := s.cache.Delete(ctx, key); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Menu cache invalidation failed",
			slog.String("restaurant_id", restaurantID),
			slog.Any("error", err))
	}
}
