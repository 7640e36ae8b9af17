package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	appErrors "github.com/lumieats/table-ordering-platform/internal/errors"
	"github.com/lumieats/table-ordering-platform/internal/models"
	service "github.com/lumieats/table-ordering-platform/internal/services"
	"github.com/lumieats/table-ordering-platform/internal/utils"
	"github.com/lumieats/table-ordering-platform/internal/utils/response"
)

type FeedbackHandler struct {
	feedbackService service.FeedbackService
	validator       *validator.Validate
}

func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		validator:       validator.New(),
	}
}

func (h *FeedbackHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.SubmitFeedbackRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.feedbackService.Submit(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, result)
	}
}

func (h *FeedbackHandler) ListInternalReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		restaurantID := r.PathValue("restaurantId")
		if restaurantID == "" {
			response.Error(w, appErrors.BadRequestError("Restaurant ID is required"))
			return
		}

		reviews, err := h.feedbackService.ListInternalReviews(r.Context(), restaurantID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, reviews)
	}
}

func (h *FeedbackHandler) ReplyToReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid review ID"))
			return
		}

		var req models.ReplyToReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.feedbackService.ReplyToReview(r.Context(), id, &req); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}
