package main

import (
	"net/http"

	"tokomart-be/internal/config"
	"tokomart-be/internal/db"
	"tokomart-be/internal/httpx"
	"tokomart-be/internal/logger"
	"tokomart-be/internal/middleware"
	"tokomart-be/internal/wishlist"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	wishlistRepo := wishlist.NewRepository(database)
	wishlistSvc := wishlist.NewService(wishlistRepo, cfg.TenantID)
	wishlistHandler := wishlist.NewHandler(wishlistSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)

	r.Get("/health", health)

	r.Route("/wishlist", func(r chi.Router) {
		// Auth first so the limiter keys callers by user id.
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.JWTSecret))
		wishlistHandler.Register(r)
	})

	logger.L().Info("wishlist service listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, r); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func health(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
