package auth

import (
	"net/http"

	"codeberg.org/actas/server/internal/config"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
)

// registers the identity provider with goth and gives gothic a short-lived
// cookie store for the login state parameter
func InitializeProviders(cfg *config.Config, provider goth.Provider) {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))

	// configure cookie for OAuth redirects
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300, // 5 minutes, enough for the hosted login round trip
		HttpOnly: true,
		Secure:   cfg.SecureCookies(),
		SameSite: http.SameSiteLaxMode,
	}

	gothic.Store = store

	// there is only one provider, so routes carry no :provider segment
	name := provider.Name()
	gothic.GetProviderName = func(*http.Request) (string, error) {
		return name, nil
	}

	goth.UseProviders(provider)
}
