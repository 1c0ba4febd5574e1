package config

import "time"

type Config struct {
	Environment string
	Port        string
	BaseURL     string

	DatabaseURL string
	RedisURL    string

	SessionSecret   string
	SessionLifetime time.Duration

	IdentityProvider IdentityProvider

	CORSOrigins   []string
	AuthRateLimit string
	EventsChannel string
}

// settings for the hosted identity provider's code-exchange endpoints
type IdentityProvider struct {
	ClientID     string
	ClientSecret string
	AuthorizeURL string
	TokenURL     string
	CallbackURL  string
}

type MigrateFlags struct {
	Direction string
	Steps     int
}

// reports whether cookies should carry the Secure attribute
func (c *Config) SecureCookies() bool {
	return c.Environment == "production" || len(c.BaseURL) >= 8 && c.BaseURL[:8] == "https://"
}
