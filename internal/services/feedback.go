package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumieats/table-ordering-platform/internal/api/middleware"
	"github.com/lumieats/table-ordering-platform/internal/config"
	appErrors "github.com/lumieats/table-ordering-platform/internal/errors"
	"github.com/lumieats/table-ordering-platform/internal/models"
	repository "github.com/lumieats/table-ordering-platform/internal/repositories"
	"github.com/lumieats/table-ordering-platform/pkg/sendGrid"
	"github.com/microcosm-cc/bluemonday"
	"log/slog"
)

type FeedbackService interface {
	Submit(ctx context.Context, req *models.SubmitFeedbackRequest) (*models.SubmitFeedbackResponse, error)
	ListInternalReviews(ctx context.Context, restaurantID string) ([]models.InternalReview, error)
	ReplyToReview(ctx context.Context, id uuid.UUID, req *models.ReplyToReviewRequest) error
}

type feedbackService struct {
	feedback    repository.FeedbackRepository
	restaurants repository.RestaurantRepository
	email       sendGrid.EmailService
	cfg         config.FeedbackConfig
	sanitizer   *bluemonday.Policy
}

func NewFeedbackService(feedback repository.FeedbackRepository, restaurants repository.RestaurantRepository, email sendGrid.EmailService, cfg config.FeedbackConfig) FeedbackService {
	return &feedbackService{
		feedback:    feedback,
		restaurants: restaurants,
		email:       email,
		cfg:         cfg,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

// Submit routes a rating to the public or private track. Ratings at or
// above the threshold are stored and the customer is pointed at the
// restaurant's public review platform; everything below stays internal
// and alerts the owner by email.
func (s *feedbackService) Submit(ctx context.Context, req *models.SubmitFeedbackRequest) (*models.SubmitFeedbackResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	restaurant, err := s.restaurants.GetRestaurantByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Restaurant introuvable").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch restaurant").WithError(err)
	}

	comment := s.sanitizer.Sanitize(req.Comment)

	if req.Rating >= s.cfg.RatingThreshold {
		entry := &models.Feedback{
			ID:           uuid.New(),
			RestaurantID: req.RestaurantID,
			TableID:      req.TableID,
			Rating:       req.Rating,
			Comment:      comment,
			CreatedAt:    time.Now(),
		}

		if err := s.feedback.CreateFeedback(ctx, entry); err != nil {
			return nil, appErrors.DatabaseError("Failed to store feedback").WithError(err)
		}

		return &models.SubmitFeedbackResponse{ReviewURL: restaurant.ReviewPlatformURL}, nil
	}

	review := &models.InternalReview{
		ID:           uuid.New(),
		RestaurantID: req.RestaurantID,
		TableID:      req.TableID,
		Rating:       req.Rating,
		Comment:      comment,
		CreatedAt:    time.Now(),
	}

	if err := s.feedback.CreateInternalReview(ctx, review); err != nil {
		return nil, appErrors.DatabaseError("Failed to store review").WithError(err)
	}

	// The alert is best effort: the review is already stored, a mail
	// outage must not turn into a customer-facing error.
	if err := s.sendAlert(ctx, restaurant, review); err != nil {
		logger.Error("Failed to send low-rating alert",
			slog.String("restaurant_id", req.RestaurantID),
			slog.String("review_id", review.ID.String()),
			slog.Any("error", err))
	}

	return &models.SubmitFeedbackResponse{}, nil
}

func (s *feedbackService) sendAlert(ctx context.Context, restaurant *models.Restaurant, review *models.InternalReview) error {

	to := restaurant.ContactEmail
	if to == "" {
		to = s.cfg.AlertEmail
	}
	if to == "" {
		return nil
	}

	body := fmt.Sprintf("Nouvel avis interne pour %s\n\nNote : %d/5\nTable : %s\n\n%s",
		restaurant.Name, review.Rating, review.TableID, review.Comment)

	return s.email.Send(ctx, &models.EmailNotificationRequest{
		To:      to,
		Subject: fmt.Sprintf("Avis client à traiter (%d/5)", review.Rating),
		Content: body,
	})
}

func (s *feedbackService) ListInternalReviews(ctx context.Context, restaurantID string) ([]models.InternalReview, error) {

	reviews, err := s.feedback.ListInternalReviews(ctx, restaurantID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list reviews").WithError(err)
	}

	return reviews, nil
}

func (s *feedbackService) ReplyToReview(ctx context.Context, id uuid.UUID, req *models.ReplyToReviewRequest) error {

	if err := s.feedback.ReplyToInternalReview(ctx, id, req.Reply, req.Resolved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Avis introuvable").WithError(err)
		}
		return appErrors.DatabaseError("Failed to update review").WithError(err)
	}

	return nil
}
