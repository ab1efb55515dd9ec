package main

import (
	"net/http"

	"tokomart-be/internal/config"
	"tokomart-be/internal/db"
	"tokomart-be/internal/httpx"
	"tokomart-be/internal/logger"
	"tokomart-be/internal/middleware"
	"tokomart-be/internal/user"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, cfg)
	userHandler := user.NewHandler(userSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(cfg.JWTSecret))

	r.Get("/health", health)
	userHandler.Register(r)

	logger.L().Info("auth service listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, r); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func health(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
