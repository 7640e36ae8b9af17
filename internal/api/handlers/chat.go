package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lumieats/table-ordering-platform/internal/api/middleware"
	"github.com/lumieats/table-ordering-platform/internal/models"
	service "github.com/lumieats/table-ordering-platform/internal/services"
	"github.com/lumieats/table-ordering-platform/internal/utils"
	"github.com/lumieats/table-ordering-platform/internal/utils/response"
	"log/slog"
)

type ChatHandler struct {
	chatService service.ChatService
	validator   *validator.Validate
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validator:   validator.New(),
	}
}

func (h *ChatHandler) Chat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.ChatRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		reply, err := h.chatService.Chat(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, reply)
	}
}

// ChatStream answers the same question as Chat but as server-sent
// events: one `data: {"delta":...}` frame per content chunk, closed by
// `data: [DONE]`. Errors that occur before the first frame keep the
// usual JSON error shape.
func (h *ChatHandler) ChatStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.ChatRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		logger := middleware.LoggerFromContext(r.Context())
		flusher, canFlush := w.(http.Flusher)

		started := false
		beginStream := func() {
			if started {
				return
			}
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			started = true
		}

		err := h.chatService.ChatStream(r.Context(), &req, func(delta string) error {
			beginStream()

			frame, err := json.Marshal(models.ChatStreamEvent{Delta: delta})
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", frame); err != nil {
				return err
			}
			if canFlush {
				flusher.Flush()
			}

			return nil
		})
		if err != nil {
			if !started {
				response.Error(w, err)
				return
			}

			// Frames already went out, the JSON error shape is no
			// longer possible. Drop the connection mid-stream.
			logger.Warn("Chat stream aborted",
				slog.String("restaurant_id", req.RestaurantID),
				slog.Any("error", err))
			return
		}

		beginStream()
		fmt.Fprint(w, "data: [DONE]\n\n")
		if canFlush {
			flusher.Flush()
		}
	}
}

func (h *ChatHandler) Upsell() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.UpsellRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		suggestion, err := h.chatService.Upsell(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, suggestion)
	}
}
