package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lumieats/table-ordering-platform/internal/api/handlers"
	appErrors "github.com/lumieats/table-ordering-platform/internal/errors"
	"github.com/lumieats/table-ordering-platform/internal/models"
	"github.com/lumieats/table-ordering-platform/internal/services/mocks"
	"github.com/lumieats/table-ordering-platform/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupChatTest() (*mocks.ChatService, *handlers.ChatHandler) {
	mockChatService := new(mocks.ChatService)
	chatHandler := handlers.NewChatHandler(mockChatService)

	return mockChatService, chatHandler
}

func chatBody(t *testing.T) *bytes.Reader {
	t.Helper()

	body, err := json.Marshal(models.ChatRequest{
		RestaurantID: "r-1",
		Messages:     []models.ChatMessage{{Role: "user", Content: "Que me conseillez-vous ?"}},
	})
	require.NoError(t, err)

	return bytes.NewReader(body)
}

func TestChatHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockChatService, chatHandler := setupChatTest()
		req := testutils.CreateTestRequestWithoutSession("POST", "/api/v1/chat", chatBody(t), nil)
		recorder := httptest.NewRecorder()

		mockChatService.On("Chat", mock.Anything, mock.AnythingOfType("*models.ChatRequest")).
			Return(&models.ChatResponse{Reply: "Le burger maison."}, nil).Once()

		// Act
		chatHandler.Chat()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.True(t, resp.Success)
		mockChatService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Restaurant ID", func(t *testing.T) {
		// Arrange
		mockChatService, chatHandler := setupChatTest()
		body, _ := json.Marshal(models.ChatRequest{Messages: []models.ChatMessage{{Role: "user", Content: "Bonjour"}}})
		req := testutils.CreateTestRequestWithoutSession("POST", "/api/v1/chat", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		chatHandler.Chat()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockChatService.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
	})
}

func TestChatStreamHandler(t *testing.T) {
	t.Run("Success - Deltas Framed As SSE", func(t *testing.T) {
		// Arrange
		mockChatService, chatHandler := setupChatTest()
		req := testutils.CreateTestRequestWithoutSession("POST", "/api/v1/chat/stream", chatBody(t), nil)
		recorder := httptest.NewRecorder()

		mockChatService.On("ChatStream", mock.Anything, mock.AnythingOfType("*models.ChatRequest"), mock.Anything).
			Run(func(args mock.Arguments) {
				fn := args.Get(2).(func(delta string) error)
				require.NoError(t, fn("Le burger"))
				require.NoError(t, fn(" maison.\nAvec frites."))
			}).
			Return(nil).Once()

		// Act
		chatHandler.ChatStream()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "text/event-stream", recorder.Header().Get("Content-Type"))
		body := recorder.Body.String()
		assert.Contains(t, body, `data: {"delta":"Le burger"}`+"\n\n")
		// Newlines inside a delta survive the JSON framing.
		assert.Contains(t, body, `data: {"delta":" maison.\nAvec frites."}`+"\n\n")
		assert.Contains(t, body, "data: [DONE]\n\n")
		mockChatService.AssertExpectations(t)
	})

	t.Run("Success - Empty Stream Still Terminates", func(t *testing.T) {
		// Arrange
		mockChatService, chatHandler := setupChatTest()
		req := testutils.CreateTestRequestWithoutSession("POST", "/api/v1/chat/stream", chatBody(t), nil)
		recorder := httptest.NewRecorder()

		mockChatService.On("ChatStream", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		chatHandler.ChatStream()(recorder, req)

		// Assert
		assert.Equal(t, "text/event-stream", recorder.Header().Get("Content-Type"))
		assert.Equal(t, "data: [DONE]\n\n", recorder.Body.String())
	})

	t.Run("Failure - Error Before First Frame Keeps JSON Shape", func(t *testing.T) {
		// Arrange
		mockChatService, chatHandler := setupChatTest()
		req := testutils.CreateTestRequestWithoutSession("POST", "/api/v1/chat/stream", chatBody(t), nil)
		recorder := httptest.NewRecorder()

		mockChatService.On("ChatStream", mock.Anything, mock.Anything, mock.Anything).
			Return(appErrors.ThirdPartyError("L'assistant est momentanément indisponible")).Once()

		// Act
		chatHandler.ChatStream()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.False(t, resp.Success)
		assert.NotContains(t, recorder.Body.String(), "data:")
	})

	t.Run("Failure - Missing Restaurant ID", func(t *testing.T) {
		// Arrange
		mockChatService, chatHandler := setupChatTest()
		body, _ := json.Marshal(models.ChatRequest{Messages: []models.ChatMessage{{Role: "user", Content: "Bonjour"}}})
		req := testutils.CreateTestRequestWithoutSession("POST", "/api/v1/chat/stream", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		chatHandler.ChatStream()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockChatService.AssertNotCalled(t, "ChatStream", mock.Anything, mock.Anything, mock.Anything)
	})
}
