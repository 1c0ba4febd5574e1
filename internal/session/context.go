package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

// Context is the explicit per-request session handle. Components receive it
// as a parameter instead of reaching for ambient session state; nothing is
// written back until Save, Regenerate or Invalidate is called.
type Context struct {
	store *Store
	sess  *sessions.Session
	r     *http.Request
	w     http.ResponseWriter
}

// opens the request's session. On error the returned Context still wraps a
// fresh, usable session.
func (s *Store) Open(w http.ResponseWriter, r *http.Request) (*Context, error) {
	sess, err := s.Get(r, DefaultName)
	if sess == nil {
		sess = sessions.NewSession(s, DefaultName)
		opts := *s.Options
		sess.Options = &opts
		sess.IsNew = true
	}

	return &Context{store: s, sess: sess, r: r, w: w}, err
}

// opaque id, empty until the session is first saved
func (c *Context) ID() string {
	return c.sess.ID
}

func (c *Context) IsNew() bool {
	return c.sess.IsNew
}

func (c *Context) Get(key string) (any, bool) {
	v, ok := c.sess.Values[key]
	return v, ok
}

func (c *Context) GetString(key string) string {
	s, _ := c.sess.Values[key].(string)
	return s
}

func (c *Context) Set(key string, value any) {
	c.sess.Values[key] = value
}

func (c *Context) Delete(key string) {
	delete(c.sess.Values, key)
}

func (c *Context) UserID() string {
	return c.GetString(KeyUserID)
}

func (c *Context) IsAuthenticated() bool {
	return c.UserID() != ""
}

// attaches the authenticated principal
func (c *Context) Login(userID string) {
	c.Set(KeyUserID, userID)
}

func (c *Context) StoreTokens(accessToken, refreshToken string) {
	c.Set(KeyAccessToken, accessToken)
	c.Set(KeyRefreshToken, refreshToken)
}

func (c *Context) AccessToken() string {
	return c.GetString(KeyAccessToken)
}

// returns the anti-forgery token, minting one if the session has none.
// minted reports whether the caller needs to Save.
func (c *Context) EnsureCSRFToken() (token string, minted bool, err error) {
	if token = c.GetString(KeyCSRFToken); token != "" {
		return token, false, nil
	}

	if err := c.RegenerateCSRFToken(); err != nil {
		return "", false, err
	}

	return c.GetString(KeyCSRFToken), true, nil
}

func (c *Context) RegenerateCSRFToken() error {
	token, err := generateToken()
	if err != nil {
		return err
	}

	c.Set(KeyCSRFToken, token)
	return nil
}

// writes values to the backend and the id cookie to the response
func (c *Context) Save() error {
	return c.store.Save(c.r, c.w, c.sess)
}

// issues a new id for the same values, retires the old id and rotates the
// anti-forgery token. The old id is deleted first, so a failed Save leaves
// the browser signed out rather than on the old id.
func (c *Context) Regenerate() error {
	if err := c.store.retire(c.r, c.sess); err != nil {
		return fmt.Errorf("session: regenerate: %w", err)
	}

	if err := c.RegenerateCSRFToken(); err != nil {
		return err
	}

	return c.Save()
}

// ends the session: drops every value including the principal, retires the
// id, and starts an empty session with a fresh anti-forgery token
func (c *Context) Invalidate() error {
	if err := c.store.retire(c.r, c.sess); err != nil {
		return fmt.Errorf("session: invalidate: %w", err)
	}

	c.sess.Values = make(map[interface{}]interface{})

	if err := c.RegenerateCSRFToken(); err != nil {
		return err
	}

	return c.Save()
}
