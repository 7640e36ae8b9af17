package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lumieats/table-ordering-platform/internal/api/middleware"
	appErrors "github.com/lumieats/table-ordering-platform/internal/errors"
	"github.com/lumieats/table-ordering-platform/internal/models"
	"github.com/lumieats/table-ordering-platform/pkg/llm"
	"log/slog"
)

// ChatCompleter is the slice of the LLM client the chat service needs.
type ChatCompleter interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
	ChatJSON(ctx context.Context, messages []llm.Message, dest any) error
	ChatStream(ctx context.Context, messages []llm.Message, fn func(delta string) error) error
}

type ChatService interface {
	Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
	ChatStream(ctx context.Context, req *models.ChatRequest, fn func(delta string) error) error
	Upsell(ctx context.Context, req *models.UpsellRequest) (*models.UpsellSuggestion, error)
}

type chatService struct {
	completer ChatCompleter
	menus     ProductService
}

func NewChatService(completer ChatCompleter, menus ProductService) ChatService {
	return &chatService{completer: completer, menus: menus}
}

// menuProduct is the trimmed catalog view injected into prompts.
type menuProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Category    string `json:"category,omitempty"`
	Available   bool   `json:"available"`
}

func (s *chatService) menuContext(ctx context.Context, restaurantID string) (*models.Menu, string, error) {

	menu, err := s.menus.GetMenu(ctx, restaurantID)
	if err != nil {
		return nil, "", err
	}

	categories := make(map[string]string, len(menu.Categories))
	for _, c := range menu.Categories {
		categories[c.ID] = c.Name
	}

	products := make([]menuProduct, 0, len(menu.Products))
	for _, p := range menu.Products {
		products = append(products, menuProduct{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    categories[p.CategoryID],
			Available:   p.Available,
		})
	}

	encoded, err := json.Marshal(products)
	if err != nil {
		return nil, "", appErrors.InternalError("Failed to encode menu context").WithError(err)
	}

	return menu, string(encoded), nil
}

// assistantMessages prepends the grounding system prompt to the
// client's conversation.
func (s *chatService) assistantMessages(ctx context.Context, req *models.ChatRequest) ([]llm.Message, error) {

	menu, menuJSON, err := s.menuContext(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	system := fmt.Sprintf(
		"Tu es l'assistant de %s. Réponds brièvement aux questions des clients "+
			"en t'appuyant uniquement sur la carte ci-dessous (prix en centimes). "+
			"Si un plat n'y figure pas, dis-le simplement.\n\nCarte : %s",
		menu.Restaurant.Name, menuJSON)

	messages := make([]llm.Message, 0, len(req.Messages)+1)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	for _, m := range req.Messages {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	return messages, nil
}

// Chat answers free-form menu questions grounded on the live catalog.
func (s *chatService) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {

	messages, err := s.assistantMessages(ctx, req)
	if err != nil {
		return nil, err
	}

	reply, err := s.completer.Chat(ctx, messages)
	if err != nil {
		return nil, appErrors.ThirdPartyError("L'assistant est momentanément indisponible").WithError(err)
	}

	return &models.ChatResponse{Reply: strings.TrimSpace(reply)}, nil
}

// ChatStream is the streaming variant of Chat: fn receives each content
// delta as the model produces it. An error from fn stops the stream and
// is returned as-is so the caller can tell a closed connection from an
// upstream failure.
func (s *chatService) ChatStream(ctx context.Context, req *models.ChatRequest, fn func(delta string) error) error {

	messages, err := s.assistantMessages(ctx, req)
	if err != nil {
		return err
	}

	delivered := false
	err = s.completer.ChatStream(ctx, messages, func(delta string) error {
		delivered = true

		return fn(delta)
	})
	if err != nil && !delivered {
		return appErrors.ThirdPartyError("L'assistant est momentanément indisponible").WithError(err)
	}

	return err
}

// Upsell asks the model for one complementary product given the cart
// contents. A suggestion pointing outside the menu is rejected.
func (s *chatService) Upsell(ctx context.Context, req *models.UpsellRequest) (*models.UpsellSuggestion, error) {

	menu, menuJSON, err := s.menuContext(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	system := fmt.Sprintf(
		"Tu recommandes un seul produit complémentaire de la carte ci-dessous, "+
			"différent de ceux déjà dans le panier et disponible. Réponds en JSON "+
			`avec les champs "suggested_product_id" et "short_reason" (une phrase).`+
			"\n\nCarte : %s", menuJSON)

	user := fmt.Sprintf("Produits déjà dans le panier : %s", strings.Join(req.ProductIDs, ", "))

	var suggestion models.UpsellSuggestion

	err = s.completer.ChatJSON(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, &suggestion)
	if err != nil {
		return nil, appErrors.ThirdPartyError("L'assistant est momentanément indisponible").WithError(err)
	}

	if !menuHasProduct(menu, suggestion.SuggestedProductID) {
		middleware.LoggerFromContext(ctx).Warn("Upsell suggestion references unknown product",
			slog.String("restaurant_id", req.RestaurantID),
			slog.String("product_id", suggestion.SuggestedProductID))

		return nil, appErrors.ThirdPartyError("La suggestion reçue est invalide")
	}

	return &suggestion, nil
}

func menuHasProduct(menu *models.Menu, id string) bool {
	for _, p := range menu.Products {
		if p.ID == id {
			return true
		}
	}

	return false
}
