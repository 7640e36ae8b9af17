package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lumieats/table-ordering-platform/internal/models"
	"github.com/lumieats/table-ordering-platform/internal/utils"
)

type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, feedback *models.Feedback) error
	CreateInternalReview(ctx context.Context, review *models.InternalReview) error
	ReplyToInternalReview(ctx context.Context, id uuid.UUID, reply string, resolved bool) error
	ListInternalReviews(ctx context.Context, restaurantID string) ([]models.InternalReview, error)
}

type feedbackRepository struct {
	DB *sql.DB
}

func NewFeedbackRepo(db *sql.DB) FeedbackRepository {
	return &feedbackRepository{DB: db}
}

func (r *feedbackRepository) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO feedback (id, restaurant_id, table_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	return r.DB.QueryRowContext(dbCtx, query, feedback.ID, feedback.RestaurantID, feedback.TableID, feedback.Rating, feedback.Comment).Scan(&feedback.CreatedAt)
}

func (r *feedbackRepository) CreateInternalReview(ctx context.Context, review *models.InternalReview) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO internal_reviews (id, restaurant_id, table_id, rating, comment, resolved)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	return r.DB.QueryRowContext(dbCtx, query, review.ID, review.RestaurantID, review.TableID, review.Rating, review.Comment, review.Resolved).Scan(&review.CreatedAt)
}

func (r *feedbackRepository) ReplyToInternalReview(ctx context.Context, id uuid.UUID, reply string, resolved bool) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE internal_reviews
		SET reply = $1, resolved = $2
		WHERE id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, reply, resolved, id)
	if err != nil {
		return fmt.Errorf("failed to update the review: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *feedbackRepository) ListInternalReviews(ctx context.Context, restaurantID string) ([]models.InternalReview, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, table_id, rating, comment, resolved, COALESCE(reply, ''), created_at
		FROM internal_reviews
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	var reviews []models.InternalReview

	for rows.Next() {
		var review models.InternalReview
		if err := rows.Scan(&review.ID, &review.RestaurantID, &review.TableID, &review.Rating, &review.Comment, &review.Resolved, &review.Reply, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}
