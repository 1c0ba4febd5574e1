package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"codeberg.org/actas/server/internal/config"
	"codeberg.org/actas/server/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)

	return srv
}

func testProvider(tokenURL string) *Provider {
	return NewProvider(config.IdentityProvider{
		ClientID:     "client_123",
		ClientSecret: "sk_test",
		AuthorizeURL: "https://idp.example.com/authorize",
		TokenURL:     tokenURL,
		CallbackURL:  "http://localhost:8080/authenticate",
	}, nil)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestExchange_Success(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "code-123", r.PostForm.Get("code"))
		assert.Equal(t, "client_123", r.PostForm.Get("client_id"))
		assert.Equal(t, "sk_test", r.PostForm.Get("client_secret"))

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  "access-abc",
			"refresh_token": "refresh-def",
			"user": map[string]any{
				"id":                  "user_01ABC",
				"email":               "ada@example.com",
				"first_name":          "Ada",
				"last_name":           "Lovelace",
				"profile_picture_url": "https://cdn.example.com/ada.png",
			},
		})
	})

	user, err := testProvider(srv.URL).Exchange(context.Background(), "code-123")
	require.NoError(t, err)

	assert.Equal(t, ProviderName, user.Provider)
	assert.Equal(t, "user_01ABC", user.UserID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "https://cdn.example.com/ada.png", user.AvatarURL)
	assert.Equal(t, "access-abc", user.AccessToken)
	assert.Equal(t, "refresh-def", user.RefreshToken)
}

func TestExchange_ProviderRejectsCode(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":             "invalid_grant",
			"error_description": "The code has expired",
		})
	})

	_, err := testProvider(srv.URL).Exchange(context.Background(), "expired")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestExchange_MissingUser(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "access-abc"})
	})

	_, err := testProvider(srv.URL).Exchange(context.Background(), "code-123")
	assert.ErrorIs(t, err, ErrNoUserInResponse)
}

func TestExchange_Timeout(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "late"})
	})

	p := testProvider(srv.URL)
	p.HTTPClient = &http.Client{Timeout: 20 * time.Millisecond}

	_, err := p.Exchange(context.Background(), "code-123")
	assert.Error(t, err)
}

func TestBeginAuth_BuildsHostedLoginURL(t *testing.T) {
	p := testProvider("https://idp.example.com/token")

	sess, err := p.BeginAuth("state-xyz")
	require.NoError(t, err)

	raw, err := sess.GetAuthURL()
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "idp.example.com", u.Host)
	assert.Equal(t, "client_123", q.Get("client_id"))
	assert.Equal(t, "state-xyz", q.Get("state"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "authkit", q.Get("provider"))
	assert.Equal(t, "http://localhost:8080/authenticate", q.Get("redirect_uri"))
}

func TestSession_AuthorizeAndFetchUser(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "access-abc",
			"user":         map[string]any{"id": "user_01ABC", "email": "ada@example.com"},
		})
	})

	p := testProvider(srv.URL)
	gs, err := p.BeginAuth("state")
	require.NoError(t, err)

	_, err = p.FetchUser(gs)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	token, err := gs.Authorize(p, url.Values{"code": {"code-123"}})
	require.NoError(t, err)
	assert.Equal(t, "access-abc", token)

	restored, err := p.UnmarshalSession(gs.Marshal())
	require.NoError(t, err)

	user, err := p.FetchUser(restored)
	require.NoError(t, err)
	assert.Equal(t, "user_01ABC", user.UserID)
	assert.Equal(t, "ada@example.com", user.Email)
}

func newRouter(t *testing.T) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewStore(session.NewMemoryBackend(), time.Hour, false,
		[]byte("0123456789abcdef0123456789abcdef"))

	r := gin.New()
	r.Use(session.Middleware(store))

	r.GET("/signin", func(c *gin.Context) {
		sc := session.FromGin(c)
		sc.Login("user-1")
		require.NoError(t, sc.Save())
		c.Status(http.StatusNoContent)
	})

	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		id, ok := GetUserID(c)
		assert.True(t, ok)
		c.String(http.StatusOK, id)
	})

	r.GET("/page", RequireAuthPage("/login"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.GET("/guest", RedirectIfAuthenticated("/dashboard"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r, store
}

func TestMiddleware_Anonymous(t *testing.T) {
	r, _ := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guest", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_Authenticated(t *testing.T) {
	r, _ := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/signin", nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	do := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w = do("/private")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())

	assert.Equal(t, http.StatusOK, do("/page").Code)

	w = do("/guest")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}
