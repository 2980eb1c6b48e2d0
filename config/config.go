package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func LoadEnv() error {
	// A missing .env is fine: in production the variables are set directly.
	_ = godotenv.Load()
	return nil
}

// Config is the resolved runtime configuration.
type Config struct {
	Port               string
	CatalogSource      string
	CatalogLocation    string
	DatabaseURL        string
	SeedCatalog        string
	FrontendURL        string
	AssetsDir          string
	SessionTTL         time.Duration
	RateLimitPerMinute int
	LogLevel           string
	Development        bool
}

// Load reads the configuration from the environment, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:          GetEnv("PORT", "8080"),
		CatalogSource: GetEnv("CATALOG_SOURCE", "file"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SeedCatalog:   os.Getenv("SEED_CATALOG_PATH"),
		FrontendURL:   os.Getenv("FRONTEND_URL"),
		AssetsDir:     GetEnv("ASSETS_DIR", "./assets"),
		LogLevel:      GetEnv("LOG_LEVEL", "info"),
		Development:   GetEnv("GIN_MODE", "debug") != "release",
	}

	switch cfg.CatalogSource {
	case "url":
		cfg.CatalogLocation = os.Getenv("CATALOG_URL")
	default:
		cfg.CatalogLocation = GetEnv("CATALOG_PATH", "./data/data.json")
	}

	ttl, err := time.ParseDuration(GetEnv("SESSION_TTL", "30m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("invalid SESSION_TTL: must be positive")
	}
	cfg.SessionTTL = ttl

	limit, err := strconv.Atoi(GetEnv("RATE_LIMIT_PER_MINUTE", "120"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}
	if limit <= 0 {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: must be positive")
	}
	cfg.RateLimitPerMinute = limit

	return cfg, nil
}

// ValidateEnv checks that the catalog source can be built from the
// environment. Returns an error if a required variable is missing.
func ValidateEnv(log *zap.Logger) error {
	var missing []string

	switch source := GetEnv("CATALOG_SOURCE", "file"); source {
	case "file":
	case "url":
		if os.Getenv("CATALOG_URL") == "" {
			missing = append(missing, "CATALOG_URL")
		}
	case "db":
		if os.Getenv("DATABASE_URL") == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be one of file, url, db; got %q", source)
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	if log == nil {
		return nil
	}
	if os.Getenv("FRONTEND_URL") == "" {
		log.Warn("FRONTEND_URL not set - CORS defaults to http://localhost:3000")
	}
	if os.Getenv("SEED_CATALOG_PATH") != "" && os.Getenv("DATABASE_URL") == "" {
		log.Warn("SEED_CATALOG_PATH set without DATABASE_URL - seeding is skipped")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
