package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestStore() (*Store, *MemoryBackend) {
	backend := NewMemoryBackend()
	return NewStore(backend, time.Hour, false, testKey), backend
}

// opens a session for a request carrying the given cookies
func open(t *testing.T, store *Store, cookies ...*http.Cookie) (*Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	sc, err := store.Open(rec, req)
	require.NoError(t, err)

	return sc, rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == DefaultName {
			return c
		}
	}

	t.Fatalf("response did not set %s cookie", DefaultName)
	return nil
}

func TestStore_SaveAndReload(t *testing.T) {
	store, backend := newTestStore()

	sc, rec := open(t, store)
	assert.True(t, sc.IsNew())
	assert.Empty(t, sc.ID())

	sc.Login("user-123")
	sc.StoreTokens("access", "refresh")
	require.NoError(t, sc.Save())
	assert.NotEmpty(t, sc.ID())
	assert.Equal(t, 1, backend.Len())

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.NotContains(t, cookie.Value, "user-123", "values must stay server-side")

	reloaded, _ := open(t, store, cookie)
	assert.False(t, reloaded.IsNew())
	assert.Equal(t, sc.ID(), reloaded.ID())
	assert.Equal(t, "user-123", reloaded.UserID())
	assert.Equal(t, "access", reloaded.AccessToken())
	assert.Equal(t, "refresh", reloaded.GetString(KeyRefreshToken))
}

func TestStore_TamperedCookieStartsFresh(t *testing.T) {
	store, _ := newTestStore()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultName, Value: "forged-session-id"})

	sc, err := store.Open(httptest.NewRecorder(), req)

	assert.Error(t, err)
	require.NotNil(t, sc)
	assert.True(t, sc.IsNew())
	assert.Empty(t, sc.ID())
	assert.False(t, sc.IsAuthenticated())
}

func TestStore_UnknownIDIsNotAdopted(t *testing.T) {
	store, backend := newTestStore()

	sc, rec := open(t, store)
	sc.Login("user-123")
	require.NoError(t, sc.Save())
	cookie := sessionCookie(t, rec)

	// backend expired the record
	require.NoError(t, backend.Delete(context.Background(), sc.ID()))

	reloaded, _ := open(t, store, cookie)
	assert.True(t, reloaded.IsNew())
	assert.Empty(t, reloaded.ID())
	assert.False(t, reloaded.IsAuthenticated())
}

// fails every Save once failSaves is set
type flakyBackend struct {
	*MemoryBackend
	failSaves bool
}

func (f *flakyBackend) Save(ctx context.Context, id, data string, ttl time.Duration) error {
	if f.failSaves {
		return errors.New("backend unavailable")
	}

	return f.MemoryBackend.Save(ctx, id, data, ttl)
}

func TestContext_RegenerateFailureSignsOut(t *testing.T) {
	backend := &flakyBackend{MemoryBackend: NewMemoryBackend()}
	store := NewStore(backend, time.Hour, false, testKey)

	sc, rec := open(t, store)
	sc.Login("user-123")
	require.NoError(t, sc.Save())
	oldID := sc.ID()

	reloaded, _ := open(t, store, sessionCookie(t, rec))
	backend.failSaves = true

	assert.Error(t, reloaded.Regenerate())

	_, err := backend.Load(context.Background(), oldID)
	assert.ErrorIs(t, err, ErrNotFound, "old id is gone even though the new one was not saved")

	stale, _ := open(t, store, sessionCookie(t, rec))
	assert.False(t, stale.IsAuthenticated())
}

func TestContext_RegenerateIssuesNewID(t *testing.T) {
	store, backend := newTestStore()

	sc, rec := open(t, store)
	sc.Login("user-123")
	require.NoError(t, sc.Save())
	oldID := sc.ID()
	oldCookie := sessionCookie(t, rec)
	oldToken, _, err := sc.EnsureCSRFToken()
	require.NoError(t, err)

	reloaded, rec2 := open(t, store, oldCookie)
	require.NoError(t, reloaded.Regenerate())

	assert.NotEqual(t, oldID, reloaded.ID())
	assert.Equal(t, "user-123", reloaded.UserID(), "values survive regeneration")
	assert.NotEqual(t, oldToken, reloaded.GetString(KeyCSRFToken))
	assert.Equal(t, 1, backend.Len())

	_, err = backend.Load(context.Background(), oldID)
	assert.ErrorIs(t, err, ErrNotFound, "old id must be retired")

	// the old cookie no longer resolves to the session
	stale, _ := open(t, store, oldCookie)
	assert.False(t, stale.IsAuthenticated())

	fresh, _ := open(t, store, sessionCookie(t, rec2))
	assert.Equal(t, "user-123", fresh.UserID())
}

func TestContext_Invalidate(t *testing.T) {
	store, _ := newTestStore()

	sc, rec := open(t, store)
	sc.Login("user-123")
	sc.StoreTokens("access", "refresh")
	require.NoError(t, sc.RegenerateCSRFToken())
	require.NoError(t, sc.Save())
	oldID := sc.ID()
	oldToken := sc.GetString(KeyCSRFToken)

	reloaded, rec2 := open(t, store, sessionCookie(t, rec))
	require.NoError(t, reloaded.Invalidate())

	assert.NotEqual(t, oldID, reloaded.ID())
	assert.False(t, reloaded.IsAuthenticated())
	assert.Empty(t, reloaded.AccessToken())
	assert.NotEmpty(t, reloaded.GetString(KeyCSRFToken))
	assert.NotEqual(t, oldToken, reloaded.GetString(KeyCSRFToken))

	after, _ := open(t, store, sessionCookie(t, rec2))
	assert.False(t, after.IsAuthenticated())
}

func TestContext_InvalidateIsIdempotent(t *testing.T) {
	store, _ := newTestStore()

	sc, _ := open(t, store)
	require.NoError(t, sc.Invalidate())
	require.NoError(t, sc.Invalidate())
	assert.False(t, sc.IsAuthenticated())
}

func TestContext_EnsureCSRFToken(t *testing.T) {
	store, _ := newTestStore()
	sc, _ := open(t, store)

	token, minted, err := sc.EnsureCSRFToken()
	require.NoError(t, err)
	assert.True(t, minted)
	assert.NotEmpty(t, token)

	again, minted, err := sc.EnsureCSRFToken()
	require.NoError(t, err)
	assert.False(t, minted)
	assert.Equal(t, token, again)
}

func TestMemoryBackend_Expiry(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	require.NoError(t, backend.Save(ctx, "a", "payload", -time.Second))

	_, err := backend.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, backend.Len())
}
