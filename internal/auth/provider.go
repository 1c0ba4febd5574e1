package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"codeberg.org/actas/server/internal/config"
	"github.com/markbates/goth"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

var (
	ErrNoUserInResponse = errors.New("token response did not include a user")
	ErrNotAuthorized    = errors.New("session has no access token")
)

var defaultHTTPClient = &http.Client{
	Timeout: 10 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	},
}

var _ goth.Provider = (*Provider)(nil)

// creates a provider for the configured client; a nil client uses a
// shared client with a 10s timeout
func NewProvider(cfg config.IdentityProvider, client *http.Client) *Provider {
	if client == nil {
		client = defaultHTTPClient
	}

	return &Provider{
		HTTPClient: client,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthorizeURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		// 20 exchanges/second with burst capacity of 10
		limiter:      rate.NewLimiter(20, 10),
		providerName: ProviderName,
	}
}

func (p *Provider) Name() string {
	return p.providerName
}

func (p *Provider) SetName(name string) {
	p.providerName = name
}

func (p *Provider) Client() *http.Client {
	return goth.HTTPClientWithFallBack(p.HTTPClient)
}

func (p *Provider) Debug(bool) {}

// builds the hosted login URL for the given state
func (p *Provider) BeginAuth(state string) (goth.Session, error) {
	url := p.config.AuthCodeURL(state, oauth2.SetAuthURLParam("provider", hostedLoginProvider))
	return &Session{AuthURL: url}, nil
}

func (p *Provider) UnmarshalSession(data string) (goth.Session, error) {
	s := &Session{}
	if err := json.NewDecoder(strings.NewReader(data)).Decode(s); err != nil {
		return nil, err
	}

	return s, nil
}

// returns the user captured when the session was authorized. The provider
// hands the profile back with the tokens, so there is no userinfo call.
func (p *Provider) FetchUser(session goth.Session) (goth.User, error) {
	s, ok := session.(*Session)
	if !ok {
		return goth.User{}, fmt.Errorf("unexpected session type %T", session)
	}

	if s.AccessToken == "" {
		return goth.User{Provider: p.Name()}, ErrNotAuthorized
	}

	return s.User, nil
}

func (p *Provider) RefreshTokenAvailable() bool {
	return true
}

func (p *Provider) RefreshToken(refreshToken string) (*oauth2.Token, error) {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, p.Client())

	token, err := p.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	return token, nil
}

// trades an authorization code for tokens and the user profile
func (p *Provider) Exchange(ctx context.Context, code string) (goth.User, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return goth.User{}, fmt.Errorf("rate limiter error: %w", err)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.Client())

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return goth.User{}, fmt.Errorf("failed to exchange code: %w", err)
	}

	return p.userFromToken(token)
}

func (p *Provider) userFromToken(token *oauth2.Token) (goth.User, error) {
	raw := token.Extra("user")
	if raw == nil {
		return goth.User{}, ErrNoUserInResponse
	}

	// round trip through JSON to get a typed payload out of the raw map
	encoded, err := json.Marshal(raw)
	if err != nil {
		return goth.User{}, fmt.Errorf("failed to read user: %w", err)
	}

	var payload userPayload
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return goth.User{}, fmt.Errorf("failed to read user: %w", err)
	}

	if payload.ID == "" {
		return goth.User{}, ErrNoUserInResponse
	}

	rawData, _ := raw.(map[string]any)

	return goth.User{
		RawData:      rawData,
		Provider:     p.Name(),
		UserID:       payload.ID,
		Email:        payload.Email,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Name:         strings.TrimSpace(payload.FirstName + " " + payload.LastName),
		AvatarURL:    payload.ProfilePictureURL,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}, nil
}
