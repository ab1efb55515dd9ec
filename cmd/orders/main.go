package main

import (
	"net/http"

	"tokomart-be/internal/cache"
	"tokomart-be/internal/cart"
	"tokomart-be/internal/config"
	"tokomart-be/internal/db"
	"tokomart-be/internal/httpx"
	"tokomart-be/internal/logger"
	"tokomart-be/internal/middleware"
	"tokomart-be/internal/order"
	"tokomart-be/internal/productclient"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	store := cache.New(cfg.RedisURL)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, store, cfg.TenantID)
	cartHandler := cart.NewHandler(cartSvc)

	orderRepo := order.NewRepository(database)
	products := productclient.New(cfg.ProductMSURL)
	orderSvc := order.NewService(orderRepo, cartSvc, products, store, cfg.TenantID)
	orderHandler := order.NewHandler(orderSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)

	r.Get("/health", health)

	// The limiter sits after Auth so authenticated callers are keyed by
	// user id rather than source address.
	r.Route("/cart", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.JWTSecret))
		cartHandler.Register(r)
	})

	r.Route("/order", func(r chi.Router) {
		// Payment callback comes from the gateway without a user token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.JWTSecret))
			orderHandler.RegisterPayment(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			r.Use(middleware.RateLimit(cfg.JWTSecret))
			orderHandler.Register(r)
		})
	})

	logger.L().Info("orders service listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, r); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func health(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
