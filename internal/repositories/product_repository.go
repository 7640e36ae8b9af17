package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumieats/table-ordering-platform/internal/models"
	"github.com/lumieats/table-ordering-platform/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProductsByRestaurant(ctx context.Context, restaurantID string) ([]models.Product, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategoriesByRestaurant(ctx context.Context, restaurantID string) ([]models.Category, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (id, restaurant_id, category_id, name, description, price, image_url, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.ID, product.RestaurantID, product.CategoryID, product.Name, product.Description, product.Price, product.ImageURL, product.Available).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, category_id, name, description, price, image_url, available, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product := &models.Product{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.RestaurantID, &product.CategoryID, &product.Name, &product.Description, &product.Price, &product.ImageURL, &product.Available, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET category_id = $1, name = $2, description = $3, price = $4, image_url = $5, available = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description, product.Price, product.ImageURL, product.Available, product.ID).Scan(&product.UpdatedAt)
}

func (r *productRepository) ListProductsByRestaurant(ctx context.Context, restaurantID string) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, category_id, name, description, price, image_url, available, created_at, updated_at
		FROM products
		WHERE restaurant_id = $1
		ORDER BY category_id, name
	`

	rows, err := r.DB.QueryContext(dbCtx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	var products []models.Product

	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.RestaurantID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Available, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *productRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO categories (id, restaurant_id, name, position)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, category.ID, category.RestaurantID, category.Name, category.Position).Scan(&category.CreatedAt, &category.UpdatedAt)
}

func (r *productRepository) ListCategoriesByRestaurant(ctx context.Context, restaurantID string) ([]models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, name, position, created_at, updated_at
		FROM categories
		WHERE restaurant_id = $1
		ORDER BY position, name
	`

	rows, err := r.DB.QueryContext(dbCtx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	var categories []models.Category

	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Position, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}
