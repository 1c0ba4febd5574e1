package impersonation

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/actas/server/internal/auth"
	"codeberg.org/actas/server/internal/events"
	"codeberg.org/actas/server/internal/logger"
	"codeberg.org/actas/server/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	values        map[string]any
	invalidations int
	invalidateErr error
}

func newFakeSession() *fakeSession {
	return &fakeSession{values: map[string]any{"user_id": "u1"}}
}

func (f *fakeSession) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeSession) Set(key string, value any) { f.values[key] = value }

func (f *fakeSession) Delete(key string) { delete(f.values, key) }

func (f *fakeSession) UserID() string {
	id, _ := f.values["user_id"].(string)
	return id
}

func (f *fakeSession) Invalidate() error {
	if f.invalidateErr != nil {
		return f.invalidateErr
	}

	f.invalidations++
	f.values = map[string]any{}
	return nil
}

func strPtr(s string) *string { return &s }

func TestStore_SetGetClear(t *testing.T) {
	sess := newFakeSession()
	store := NewStore(sess)

	assert.Nil(t, store.Get())

	store.Set(Record{Email: "admin@example.com", Reason: strPtr("support ticket")})
	store.Set(Record{Email: "other@example.com"})

	got := store.Get()
	require.NotNil(t, got)
	assert.Equal(t, "other@example.com", got.Email, "set overwrites")
	assert.Nil(t, got.Reason)

	store.Clear()
	assert.Nil(t, store.Get())

	store.Clear()
	assert.Nil(t, store.Get(), "clear is idempotent")
}

func TestStore_GetReturnsCopy(t *testing.T) {
	sess := newFakeSession()
	store := NewStore(sess)
	store.Set(Record{Email: "admin@example.com"})

	got := store.Get()
	got.Email = "mutated@example.com"

	assert.Equal(t, "admin@example.com", store.Get().Email)
}

func TestGateway_StatusAndBanner(t *testing.T) {
	g := NewGateway(nil)
	sess := newFakeSession()

	status := g.Status(sess)
	assert.False(t, status.IsImpersonating)
	assert.Nil(t, status.Impersonator)
	assert.Nil(t, g.BannerData(sess))

	NewStore(sess).Set(Record{Email: "admin@example.com", Reason: strPtr("debugging")})

	status = g.Status(sess)
	assert.True(t, status.IsImpersonating)
	require.NotNil(t, status.Impersonator)
	assert.Equal(t, "admin@example.com", status.Impersonator.Email)
	assert.Equal(t, "debugging", *g.BannerData(sess).Reason)
}

func TestGateway_StopTwice(t *testing.T) {
	var rec events.Recorder
	g := NewGateway(&rec)
	sess := newFakeSession()
	NewStore(sess).Set(Record{Email: "admin@example.com"})

	path, err := g.Stop(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, LogoutPath, path)
	assert.False(t, g.Status(sess).IsImpersonating)
	assert.Empty(t, sess.UserID(), "principal is dropped")

	path, err = g.Stop(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, LogoutPath, path)
	assert.Equal(t, 2, sess.invalidations)

	stopped := rec.OfType(events.TypeImpersonationStopped)
	require.Len(t, stopped, 2)
	assert.Equal(t, "u1", stopped[0].UserID)
	assert.Equal(t, "admin@example.com", stopped[0].Data["impersonator"])
	assert.Equal(t, false, stopped[1].Data["was_impersonating"])
}

func TestGateway_StopInvalidateError(t *testing.T) {
	g := NewGateway(nil)
	sess := newFakeSession()
	sess.invalidateErr = errors.New("backend down")

	_, err := g.Stop(context.Background(), sess)
	assert.ErrorContains(t, err, "backend down")
}

func TestRecord_SurvivesSessionRoundTrip(t *testing.T) {
	store := session.NewStore(session.NewMemoryBackend(), time.Hour, false,
		[]byte("0123456789abcdef0123456789abcdef"))

	rec := httptest.NewRecorder()
	sc, err := store.Open(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	NewStore(sc).Set(Record{Email: "admin@example.com", Reason: strPtr("audit")})
	require.NoError(t, sc.Save())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	reloaded, err := store.Open(httptest.NewRecorder(), req)
	require.NoError(t, err)

	got := NewStore(reloaded).Get()
	require.NotNil(t, got)
	assert.Equal(t, "admin@example.com", got.Email)
	require.NotNil(t, got.Reason)
	assert.Equal(t, "audit", *got.Reason)
}

func TestShare_ReadsSlotPerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := session.NewStore(session.NewMemoryBackend(), time.Hour, false,
		[]byte("0123456789abcdef0123456789abcdef"))

	router := gin.New()
	router.Use(session.Middleware(store), Share(), Detect())
	router.GET("/start", func(c *gin.Context) {
		sc := session.FromGin(c)
		NewStore(sc).Set(Record{Email: "admin@example.com"})
		require.NoError(t, sc.Save())
		c.JSON(http.StatusOK, gin.H{"impersonation": FromGin(c)})
	})
	router.GET("/page", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"impersonation": FromGin(c)})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/start", nil))
	assert.JSONEq(t, `{"impersonation":null}`, w.Body.String(), "computed before the handler ran")

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.JSONEq(t, `{"impersonation":{"email":"admin@example.com","reason":null}}`, w.Body.String())
}

func TestDetectLogsImpersonatedAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	previous := logger.Default()
	logger.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { logger.SetDefault(previous) })

	store := session.NewStore(session.NewMemoryBackend(), time.Hour, false,
		[]byte("0123456789abcdef0123456789abcdef"))

	router := gin.New()
	router.Use(session.Middleware(store), Share())
	router.GET("/start", func(c *gin.Context) {
		sc := session.FromGin(c)
		sc.Login("user-42")
		NewStore(sc).Set(Record{Email: "admin@example.com"})
		require.NoError(t, sc.Save())
	})
	router.GET("/page", auth.RequireAuth(), Detect(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/start", nil))

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Contains(t, buf.String(), "impersonated request")
	assert.Contains(t, buf.String(), "impersonator=admin@example.com")
	assert.Contains(t, buf.String(), "user_id=user-42")
}
