package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries every environment setting a service needs. It is loaded once
// at startup and handed to constructors; nothing reads the environment after
// that.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	// TenantID is the tenant scope this server instance runs under. Every
	// query is filtered by it.
	TenantID      string
	AdminTenantID string

	JWTSecret      string
	AdminJWTSecret string

	RedisURL     string
	ProductMSURL string
	TenantMSURL  string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),

		TenantID:      os.Getenv("TENANT_ID"),
		AdminTenantID: os.Getenv("ADMIN_TENANT_ID"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),

		RedisURL:     os.Getenv("REDIS_URL"),
		ProductMSURL: os.Getenv("PRODUCT_MS_URL"),
		TenantMSURL:  os.Getenv("TENANT_MS_URL"),
	}

	// Admin logins share the server tenant unless told otherwise.
	if cfg.AdminTenantID == "" {
		cfg.AdminTenantID = cfg.TenantID
	}

	if cfg.DBHost == "" || cfg.TenantID == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
