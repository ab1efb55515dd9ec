package main

import (
	"net/http"

	"tokomart-be/internal/cache"
	"tokomart-be/internal/config"
	"tokomart-be/internal/db"
	"tokomart-be/internal/httpx"
	"tokomart-be/internal/logger"
	"tokomart-be/internal/middleware"
	"tokomart-be/internal/product"
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

	store := cache.New(cfg.RedisURL)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, store, cfg.TenantID)
	productHandler := product.NewHandler(productSvc)

	tenants := tenant.NewClient(cfg.TenantMSURL)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)

	r.Get("/health", health)

	r.Route("/product", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.JWTSecret))
			productHandler.Register(r)
		})

		// Catalog writes require an admin token from a user who owns the
		// tenant this server runs under. The limiter runs after AdminAuth
		// so admins are keyed by user id, and throttled callers never
		// reach the tenant directory.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.AdminJWTSecret))
			r.Use(middleware.RateLimit(cfg.JWTSecret))
			r.Use(middleware.TenantOwner(tenants, cfg.TenantID))
			productHandler.RegisterAdmin(r)
		})
	})

	r.Route("/category", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.JWTSecret))
			productHandler.RegisterCategories(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.AdminJWTSecret))
			r.Use(middleware.RateLimit(cfg.JWTSecret))
			r.Use(middleware.TenantOwner(tenants, cfg.TenantID))
			productHandler.RegisterAdminCategories(r)
		})
	})

	logger.L().Info("products service listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, r); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func health(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
