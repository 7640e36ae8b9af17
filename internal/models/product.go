package models

import "time"

type Category struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Product prices are integers in the smallest currency unit.
type Product struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	CategoryID   string    `json:"category_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	ImageURL     string    `json:"image_url,omitempty"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Category     *Category `json:"category,omitempty"`
}

type CreateProductRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	CategoryID   string `json:"category_id"   validate:"required"`
	Name         string `json:"name"          validate:"required,min=1,max=200"`
	Description  string `json:"description,omitempty"`
	Price        int64  `json:"price"         validate:"required,gt=0"`
	ImageURL     string `json:"image_url,omitempty"`
	Available    *bool  `json:"available,omitempty"`
}

type UpdateProductRequest struct {
	CategoryID  *string `json:"category_id,omitempty"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	ImageURL    *string `json:"image_url,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type CreateCategoryRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Name         string `json:"name"          validate:"required,min=1,max=100"`
	Position     int    `json:"position"      validate:"gte=0"`
}

// Menu is the full catalog for one restaurant, served to the table UI
// and used as chat context.
type Menu struct {
	Restaurant *Restaurant `json:"restaurant"`
	Categories []Category  `json:"categories"`
	Products   []Product   `json:"products"`
}
