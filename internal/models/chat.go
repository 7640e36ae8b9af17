package models

type ChatMessage struct {
	Role    string `json:"role"    validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=4000"`
}

type ChatRequest struct {
	RestaurantID string        `json:"restaurant_id" validate:"required"`
	Messages     []ChatMessage `json:"messages"      validate:"required,min=1,dive"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatStreamEvent is one SSE data frame of the streaming chat endpoint.
type ChatStreamEvent struct {
	Delta string `json:"delta"`
}

type UpsellRequest struct {
	RestaurantID string   `json:"restaurant_id" validate:"required"`
	ProductIDs   []string `json:"product_ids"   validate:"required,min=1"`
}

// UpsellSuggestion must reference a product present in the menu
// context handed to the model; unknown IDs are a service error.
type UpsellSuggestion struct {
	SuggestedProductID string `json:"suggested_product_id"`
	ShortReason        string `json:"short_reason"`
}
