package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr       string
	CORSOrigin string

	// State storage. Redis is preferred when set; Postgres is the
	// fallback; with neither the store runs in-memory only.
	RedisURL    string
	DatabaseURL string
	Namespace   string

	// Transient login-error indicator lifetime.
	LoginErrorTTL time.Duration

	// Gemini text generation
	GeminiAPIKey string
	GeminiModel  string

	// Meilisearch project search (optional)
	MeiliURL       string
	MeiliMasterKey string

	// MinIO media storage (optional; data-URL fallback when unset)
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MaxUploadBytes int64

	// SMTP lead notifications (optional)
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	NotifyEmail  string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		Addr:       getenv("API_ADDR", ":8790"),
		CORSOrigin: getenv("GAHLAN_CORS_ORIGIN", "*"),

		RedisURL:    getenv("REDIS_URL", ""),
		DatabaseURL: getenv("DATABASE_URL", ""),
		Namespace:   getenv("GAHLAN_NAMESPACE", "gahlan"),

		LoginErrorTTL: time.Duration(getenvInt("GAHLAN_LOGIN_ERROR_TTL_MS", 2000)) * time.Millisecond,

		GeminiAPIKey: getenv("GEMINI_API_KEY", ""),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-3-flash-preview"),

		MeiliURL:       getenv("MEILI_URL", ""),
		MeiliMasterKey: getenv("MEILI_MASTER_KEY", ""),

		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "gahlan-media"),
		MinioUseSSL:    getenvBool("MINIO_USE_SSL", false),
		MaxUploadBytes: int64(getenvInt("GAHLAN_MAX_UPLOAD_BYTES", 5<<20)),

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", ""),
		SMTPFromName: getenv("SMTP_FROM_NAME", "Gahlan Studio"),
		NotifyEmail:  getenv("GAHLAN_NOTIFY_EMAIL", ""),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
