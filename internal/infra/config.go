package infra

import (
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv string
	Port   string

	// Language model gateway.
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	OpenAIOrg     string

	// Image generation. When ProdiaToken is empty the placeholder provider
	// is used so the pipeline stays operational without a paid key.
	ProdiaToken   string
	ProdiaBaseURL string
	ProdiaJobType string

	// Background removal. Optional; without a token removal requests fall
	// back to the unprocessed image.
	ReplicateToken   string
	ReplicateBaseURL string
	ReplicateVersion string

	// Asset storage: S3 when an endpoint is configured, local filesystem
	// otherwise.
	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3UseSSL        bool
	S3PublicBaseURL string
	StorageDir      string
	StorageBaseURL  string

	// Optional Postgres session persistence; in-memory when unset.
	DatabaseURL string
	SessionTTL  time.Duration

	ImageRatePerMin  int
	RateLimitPerMin  int
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8080"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIOrg:     os.Getenv("OPENAI_ORG"),

		ProdiaToken:   os.Getenv("PRODIA_TOKEN"),
		ProdiaBaseURL: getEnv("PRODIA_BASE_URL", "https://inference.prodia.com"),
		ProdiaJobType: getEnv("PRODIA_JOB_TYPE", "inference.flux.schnell.txt2img.v1"),

		ReplicateToken:   os.Getenv("REPLICATE_API_TOKEN"),
		ReplicateBaseURL: getEnv("REPLICATE_BASE_URL", "https://api.replicate.com/v1"),
		ReplicateVersion: os.Getenv("REPLICATE_REMBG_VERSION"),

		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3Bucket:        getEnv("S3_BUCKET", "designforge"),
		S3UseSSL:        getEnvBool("S3_USE_SSL", true),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		StorageDir:      getEnv("STORAGE_DIR", "./data/assets"),
		StorageBaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/static"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		SessionTTL:  time.Minute * time.Duration(getEnvInt("SESSION_TTL_MINUTES", 24*60)),

		ImageRatePerMin:  getEnvInt("IMAGE_RATE_PER_MINUTE", 30),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
