package models

import "time"

type Restaurant struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	ContactEmail      string    `json:"contact_email"`
	ReviewPlatformURL string    `json:"review_platform_url"`
	Currency          string    `json:"currency"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Table struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Label        string    `json:"label"`
	CreatedAt    time.Time `json:"created_at"`
}
