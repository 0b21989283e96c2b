package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT      string
	APP_ENV   string
	LOG_LEVEL string

	DB_URL     string
	JWT_SECRET string

	ACCESS_TOKEN_TTL        time.Duration
	REFRESH_TOKEN_TTL       time.Duration
	REVOKED_TOKEN_RETENTION time.Duration
	TOKEN_PURGE_SCHEDULE    string

	CORS_ORIGIN string

	// uploads
	UPLOAD_DIR       string
	PUBLIC_BASE_URL  string
	STORAGE_BASE_URL string
	MAX_UPLOAD_MB    int

	SEED_ADMIN_EMAIL    string
	SEED_ADMIN_PASSWORD string
)

const ServiceName = "rental-app"

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	APP_ENV = getEnv("APP_ENV", "development")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")

	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	ACCESS_TOKEN_TTL = getEnvAsDuration("ACCESS_TOKEN_TTL", 24*time.Hour)
	REFRESH_TOKEN_TTL = getEnvAsDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour)
	REVOKED_TOKEN_RETENTION = getEnvAsDuration("REVOKED_TOKEN_RETENTION", 30*24*time.Hour)
	TOKEN_PURGE_SCHEDULE = getEnv("TOKEN_PURGE_SCHEDULE", "")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")

	UPLOAD_DIR = getEnv("UPLOAD_DIR", "./uploads")
	PUBLIC_BASE_URL = getEnv("PUBLIC_BASE_URL", "")
	STORAGE_BASE_URL = getEnv("STORAGE_BASE_URL", "")
	MAX_UPLOAD_MB = getEnvAsInt("MAX_UPLOAD_MB", 10)

	SEED_ADMIN_EMAIL = getEnv("SEED_ADMIN_EMAIL", "")
	SEED_ADMIN_PASSWORD = getEnv("SEED_ADMIN_PASSWORD", "")
}

// MaxUploadBytes is the upload limit derived from MAX_UPLOAD_MB.
func MaxUploadBytes() int64 {
	return int64(MAX_UPLOAD_MB) * 1024 * 1024
}

func IsProduction() bool {
	return APP_ENV == "production"
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
