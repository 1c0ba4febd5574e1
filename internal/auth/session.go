package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/markbates/goth"
)

func (s *Session) GetAuthURL() (string, error) {
	if s.AuthURL == "" {
		return "", fmt.Errorf("%s: missing auth url", ProviderName)
	}

	return s.AuthURL, nil
}

func (s *Session) Marshal() string {
	b, _ := json.Marshal(s)
	return string(b)
}

// completes the round trip started by BeginAuth
func (s *Session) Authorize(provider goth.Provider, params goth.Params) (string, error) {
	p, ok := provider.(*Provider)
	if !ok {
		return "", fmt.Errorf("unexpected provider type %T", provider)
	}

	user, err := p.Exchange(context.Background(), params.Get("code"))
	if err != nil {
		return "", err
	}

	s.AccessToken = user.AccessToken
	s.RefreshToken = user.RefreshToken
	s.ExpiresAt = user.ExpiresAt
	s.User = user

	return s.AccessToken, nil
}
