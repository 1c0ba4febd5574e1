package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultBaseURL         = "http://localhost:8080"
	defaultSessionLifetime = 2 * time.Hour
	defaultAuthorizeURL    = "https://api.workos.com/user_management/authorize"
	defaultTokenURL        = "https://api.workos.com/user_management/authenticate"
	defaultAuthRateLimit   = "30-M"
	defaultEventsChannel   = "actas:events"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := &Config{
		Environment:   getenv("ENVIRONMENT", "development"),
		Port:          getenv("PORT", defaultPort),
		BaseURL:       strings.TrimRight(getenv("BASE_URL", defaultBaseURL), "/"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AuthRateLimit: getenv("AUTH_RATE_LIMIT", defaultAuthRateLimit),
		EventsChannel: getenv("EVENTS_CHANNEL", defaultEventsChannel),
		IdentityProvider: IdentityProvider{
			ClientID:     os.Getenv("IDP_CLIENT_ID"),
			ClientSecret: os.Getenv("IDP_CLIENT_SECRET"),
			AuthorizeURL: getenv("IDP_AUTHORIZE_URL", defaultAuthorizeURL),
			TokenURL:     getenv("IDP_TOKEN_URL", defaultTokenURL),
		},
	}

	cfg.IdentityProvider.CallbackURL = cfg.BaseURL + "/authenticate"

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is required")
	}

	if len(cfg.SessionSecret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required (at least 32 bytes)")
	}

	if cfg.IdentityProvider.ClientID == "" || cfg.IdentityProvider.ClientSecret == "" {
		return nil, fmt.Errorf("IDP_CLIENT_ID and IDP_CLIENT_SECRET environment variables are required")
	}

	lifetime, err := parseDuration(os.Getenv("SESSION_LIFETIME"), defaultSessionLifetime)
	if err != nil {
		return nil, fmt.Errorf("SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	} else {
		cfg.CORSOrigins = []string{cfg.BaseURL}
	}

	return cfg, nil
}

// loads only what cmd/migrate needs
func LoadDatabaseURL() (string, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "", fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return dsn, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}

	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", raw)
	}

	return d, nil
}
