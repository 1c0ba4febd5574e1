package session

import (
	"encoding/base64"
	"fmt"

	"github.com/gorilla/securecookie"
)

// generates a session id with 256 bits of entropy
func GenerateID() (string, error) {
	b := securecookie.GenerateRandomKey(32)
	if b == nil {
		return "", fmt.Errorf("session: failed to generate id")
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// generates an anti-forgery token
func generateToken() (string, error) {
	b := securecookie.GenerateRandomKey(32)
	if b == nil {
		return "", fmt.Errorf("session: failed to generate csrf token")
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
