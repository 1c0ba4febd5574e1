package main

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const codeTTL = 5 * time.Minute

// a signed-in identity waiting for its code to be exchanged
type grant struct {
	user      mockUser
	actor     string
	reason    string
	expiresAt time.Time
}

type mockUser struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

// mockProvider imitates the hosted identity provider for local development:
// every authorize request signs the default user in, and /impersonate starts
// a provider-initiated impersonation session the way an admin dashboard would
type mockProvider struct {
	callbackURL string
	signingKey  []byte
	user        mockUser

	mu     sync.Mutex
	grants map[string]grant
}

func newMockProvider(callbackURL string, user mockUser) *mockProvider {
	return &mockProvider{
		callbackURL: callbackURL,
		signingKey:  []byte(uuid.NewString()),
		user:        user,
		grants:      make(map[string]grant),
	}
}

func (p *mockProvider) routes(r gin.IRouter) {
	r.GET("/authorize", p.authorize)
	r.GET("/impersonate", p.impersonate)
	r.POST("/token", p.token)
}

// GET /authorize?redirect_uri=&state=
func (p *mockProvider) authorize(c *gin.Context) {
	redirect := c.DefaultQuery("redirect_uri", p.callbackURL)

	code := p.issue(grant{user: p.user})
	c.Redirect(http.StatusFound, withQuery(redirect, code, c.Query("state")))
}

// GET /impersonate?actor=&reason= redirects to the callback with no state
func (p *mockProvider) impersonate(c *gin.Context) {
	actor := c.DefaultQuery("actor", "admin@example.com")

	code := p.issue(grant{user: p.user, actor: actor, reason: c.Query("reason")})
	c.Redirect(http.StatusFound, withQuery(p.callbackURL, code, ""))
}

// POST /token with grant_type=authorization_code
func (p *mockProvider) token(c *gin.Context) {
	if c.PostForm("grant_type") != "authorization_code" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported_grant_type"})
		return
	}

	g, ok := p.redeem(c.PostForm("code"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_grant",
			"error_description": "The code is invalid or has expired",
		})
		return
	}

	accessToken, err := p.sign(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": uuid.NewString(),
		"user":          g.user,
	})
}

func (p *mockProvider) issue(g grant) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	code := uuid.NewString()
	g.expiresAt = time.Now().Add(codeTTL)
	p.grants[code] = g

	return code
}

// codes are single use
func (p *mockProvider) redeem(code string) (grant, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	g, ok := p.grants[code]
	delete(p.grants, code)

	if !ok || time.Now().After(g.expiresAt) {
		return grant{}, false
	}

	return g, true
}

func (p *mockProvider) sign(g grant) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": g.user.ID,
		"sid": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
	}

	if g.actor != "" {
		act := map[string]any{"sub": g.actor}
		if g.reason != "" {
			act["reason"] = g.reason
		}
		claims["act"] = act
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return token, nil
}

func withQuery(base, code, state string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}

	q := u.Query()
	q.Set("code", code)
	if state != "" {
		q.Set("state", state)
	}
	u.RawQuery = q.Encode()

	return u.String()
}
