package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumieats/table-ordering-platform/internal/api/handlers"
	"github.com/lumieats/table-ordering-platform/internal/api/middleware"
	"github.com/lumieats/table-ordering-platform/internal/cache"
	"github.com/lumieats/table-ordering-platform/internal/config"
	"github.com/lumieats/table-ordering-platform/internal/health"
	"github.com/lumieats/table-ordering-platform/internal/metrics"
	repository "github.com/lumieats/table-ordering-platform/internal/repositories"
	service "github.com/lumieats/table-ordering-platform/internal/services"
	"github.com/lumieats/table-ordering-platform/pkg/llm"
	"github.com/lumieats/table-ordering-platform/pkg/sendGrid"
	"log/slog"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	snapshotStore := repository.NewCartSnapshotStore(redisClient, cfg.Cart.SnapshotMaxAge)

	// Vendor clients
	sendGridClient := sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	llmClient := llm.NewClient(cfg.Chat.APIKey, cfg.Chat.BaseURL, cfg.Chat.Model)

	// Services and handlers
	couponService := service.NewCouponService(repos.Coupon, repos.Campaign, cfg.Coupon)
	couponHandler := handlers.NewCouponHandler(couponService)
	cartService := service.NewCartService(snapshotStore, repos.Product, repos.Restaurant, couponService, cfg.Cart)
	cartHandler := handlers.NewCartHandler(cartService)
	productService := service.NewProductService(repos.Product, repos.Restaurant, redisCache, cfg.Cache)
	productHandler := handlers.NewProductHandler(productService)
	orderService := service.NewOrderService(repos.Order, couponService, cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	feedbackService := service.NewFeedbackService(repos.Feedback, repos.Restaurant, sendGridClient, cfg.Feedback)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	chatService := service.NewChatService(llmClient, productService)
	chatHandler := handlers.NewChatHandler(chatService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/cart", middleware.RequireSession(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/context", middleware.RequireSession(cartHandler.SetContext()))
	routerMux.HandleFunc("POST /api/v1/cart/items", middleware.RequireSession(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items", middleware.RequireSession(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", middleware.RequireSession(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", middleware.RequireSession(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/coupon", middleware.RequireSession(cartHandler.ApplyCoupon()))
	routerMux.HandleFunc("DELETE /api/v1/cart/coupon", middleware.RequireSession(cartHandler.RemoveCoupon()))
	routerMux.HandleFunc("POST /api/v1/coupons/verify", couponHandler.Verify())
	routerMux.HandleFunc("POST /api/v1/coupons/generate", couponHandler.Generate())
	routerMux.HandleFunc("GET /api/v1/restaurants/{restaurantId}/menu", productHandler.GetMenu())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/products", productHandler.CreateProduct())
	routerMux.HandleFunc("PUT /api/v1/products/{id}", productHandler.UpdateProduct())
	routerMux.HandleFunc("POST /api/v1/categories", productHandler.CreateCategory())
	routerMux.HandleFunc("POST /api/v1/orders", middleware.RequireSession(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", orderHandler.GetOrder())
	routerMux.HandleFunc("GET /api/v1/restaurants/{restaurantId}/orders", orderHandler.ListOrders())
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", orderHandler.UpdateStatus())
	routerMux.HandleFunc("POST /api/v1/feedback", feedbackHandler.Submit())
	routerMux.HandleFunc("GET /api/v1/restaurants/{restaurantId}/reviews", feedbackHandler.ListInternalReviews())
	routerMux.HandleFunc("POST /api/v1/reviews/{id}/reply", feedbackHandler.ReplyToReview())
	routerMux.HandleFunc("POST /api/v1/chat", chatHandler.Chat())
	routerMux.HandleFunc("POST /api/v1/chat/stream", chatHandler.ChatStream())
	routerMux.HandleFunc("POST /api/v1/chat/upsell", chatHandler.Upsell())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
