package main

import (
	"context"
	"log"
	"time"

	"toystore-api/internal/core/cache"
	"toystore-api/internal/core/config"
	"toystore-api/internal/core/logger"
	"toystore-api/internal/core/money"
	"toystore-api/internal/core/server"
	"toystore-api/internal/core/validation"
	authadapter "toystore-api/internal/features/auth/adapters"
	authhandler "toystore-api/internal/features/auth/handler"
	authservice "toystore-api/internal/features/auth/service"
	cartadapter "toystore-api/internal/features/cart/adapters"
	carthandler "toystore-api/internal/features/cart/handler"
	cartservice "toystore-api/internal/features/cart/service"
	checkoutadapter "toystore-api/internal/features/checkout/adapters"
	checkouthandler "toystore-api/internal/features/checkout/handler"
	checkoutservice "toystore-api/internal/features/checkout/service"

	"go.uber.org/zap"
)

// @title Toystore API
// @version 1.0
// @description Session cart, checkout and auth API for the toy storefront.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Session snapshots live in Redis; the ephemeral checkout slot lives
	// in process memory and is wiped on restart on purpose.
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	if err := redisCache.Ping(context.Background()); err != nil {
		l.Fatal("Redis health check failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	memoryCache := cache.NewMemoryAdapter()
	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	validate := validation.New()
	formatter := money.NewFormatter(cfg.Currency.Symbol, cfg.Currency.Code)

	// Auth
	credentialRepo := authadapter.NewRedisCredentialRepository(redisCache, sessionTTL)
	authProvider := authadapter.NewCommerceAuthAdapter(cfg.Commerce)
	authSvc := authservice.NewAuthService(credentialRepo, authProvider)
	authHdl := authhandler.NewAuthHandler(authSvc, validate)

	// Cart
	cartRepo := cartadapter.NewRedisCartRepository(redisCache, sessionTTL)
	cartSvc := cartservice.NewCartService(cartRepo)
	cartHdl := carthandler.NewCartHandler(cartSvc, validate)

	// Checkout
	checkoutRepo := checkoutadapter.NewSplitCheckoutRepository(redisCache, memoryCache, sessionTTL)
	commerce := checkoutadapter.NewCommerceAdapter(cfg.Commerce)
	checkoutSvc := checkoutservice.NewCheckoutService(checkoutRepo, cartSvc, commerce, commerce, authSvc, validate)
	checkoutHdl := checkouthandler.NewCheckoutHandler(checkoutSvc, formatter, validate)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Post("/auth/login", authHdl.Login)
	srv.App.Post("/auth/logout", authHdl.Logout)
	srv.App.Get("/auth/me", authhandler.RequireAuth(authSvc), authHdl.Me)

	srv.App.Get("/cart", cartHdl.Get)
	srv.App.Post("/cart/items", cartHdl.AddItem)
	srv.App.Put("/cart/items/:id", cartHdl.UpdateItem)
	srv.App.Delete("/cart/items/:id", cartHdl.RemoveItem)
	srv.App.Delete("/cart", cartHdl.Clear)

	srv.App.Get("/checkout", checkoutHdl.Get)
	srv.App.Delete("/checkout", checkoutHdl.Clear)
	srv.App.Put("/checkout/billing-address", checkoutHdl.SetBillingAddress)
	srv.App.Put("/checkout/shipping-address", checkoutHdl.SetShippingAddress)
	srv.App.Put("/checkout/contact", checkoutHdl.SetContact)
	srv.App.Put("/checkout/delivery-time", checkoutHdl.SetDeliveryTime)
	srv.App.Put("/checkout/payment-gateway", checkoutHdl.SetPaymentGateway)
	srv.App.Put("/checkout/coupon", checkoutHdl.ApplyCoupon)
	srv.App.Delete("/checkout/coupon", checkoutHdl.RemoveCoupon)
	srv.App.Put("/checkout/note", checkoutHdl.SetNote)
	srv.App.Post("/checkout/wallet", checkoutHdl.ToggleWallet)
	srv.App.Post("/checkout/verify", checkoutHdl.Verify)
	srv.App.Get("/checkout/summary", checkoutHdl.Summary)
	srv.App.Post("/orders", checkoutHdl.PlaceOrder)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
