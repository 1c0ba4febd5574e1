package auth

import (
	"net/http"
	"time"

	"github.com/markbates/goth"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// goth provider name and gothic session key
	ProviderName = "workos"

	// value of the provider query parameter selecting the hosted login page
	hostedLoginProvider = "authkit"

	// gin context key for the authenticated user's id
	contextUserID = "user_id"
)

// Provider talks to the identity provider's authorization and token
// endpoints. It implements goth.Provider so /login can go through gothic,
// and exposes Exchange for the callback, which does not.
type Provider struct {
	HTTPClient *http.Client

	config       *oauth2.Config
	limiter      *rate.Limiter
	providerName string
}

// Session is the goth.Session for a single authorization round trip
type Session struct {
	AuthURL      string    `json:"auth_url"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         goth.User `json:"user"`
}

// user object returned alongside the tokens
type userPayload struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	ProfilePictureURL string `json:"profile_picture_url"`
}
