package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a public-track entry (rating at or above the firewall
// threshold); InternalReview holds the private track.
type Feedback struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	TableID      string    `json:"table_id,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type InternalReview struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	TableID      string    `json:"table_id,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	Resolved     bool      `json:"resolved"`
	Reply        string    `json:"reply,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type SubmitFeedbackRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	TableID      string `json:"table_id,omitempty"`
	Rating       int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment      string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// ReviewURL is set only on the public track: the caller redirects the
// customer to the restaurant's review platform.
type SubmitFeedbackResponse struct {
	ReviewURL string `json:"review_url,omitempty"`
}

type ReplyToReviewRequest struct {
	Reply    string `json:"reply" validate:"required,max=2000"`
	Resolved bool   `json:"resolved"`
}

type EmailNotificationRequest struct {
	To          string   `json:"to"`
	CC          []string `json:"cc,omitempty"`
	BCC         []string `json:"bcc,omitempty"`
	Subject     string   `json:"subject"`
	Content     string   `json:"content"`
	HTMLContent string   `json:"html_content,omitempty"`
}
