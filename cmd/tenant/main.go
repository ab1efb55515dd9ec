package main

import (
	"net/http"

	"tokomart-be/internal/config"
	"tokomart-be/internal/db"
	"tokomart-be/internal/httpx"
	"tokomart-be/internal/logger"
	"tokomart-be/internal/middleware"
	"tokomart-be/internal/tenant"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	tenantRepo := tenant.NewRepository(database)
	tenantSvc := tenant.NewService(tenantRepo)
	tenantHandler := tenant.NewHandler(tenantSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)

	r.Get("/health", health)

	r.Route("/tenant", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.JWTSecret))
			tenantHandler.Register(r)
		})

		// Auth first so the limiter keys authenticated callers by user id.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			r.Use(middleware.RateLimit(cfg.JWTSecret))
			tenantHandler.RegisterAuthed(r)
		})
	})

	logger.L().Info("tenant service listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, r); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func health(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
