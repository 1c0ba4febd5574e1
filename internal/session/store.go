package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// Store is a gorilla sessions.Store that keeps values server-side and sends
// only a signed session id to the client. Unlike the cookie store the id is
// meaningful, so Regenerate and Invalidate actually retire the old one.
type Store struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options

	backend Backend
	ttl     time.Duration
}

var _ sessions.Store = (*Store)(nil)

// creates a store; keyPairs follow securecookie.CodecsFromPairs
func NewStore(backend Backend, ttl time.Duration, secure bool, keyPairs ...[]byte) *Store {
	s := &Store{
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		},
		backend: backend,
		ttl:     ttl,
	}

	for _, c := range s.Codecs {
		if codec, ok := c.(*securecookie.SecureCookie); ok {
			// payloads live in the backend, tokens push them past the cookie limit
			codec.MaxLength(0)
			codec.MaxAge(int(ttl.Seconds()))
		}
	}

	return s
}

// returns the cached session for this request
func (s *Store) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// loads the session named by the request cookie, or a fresh one
func (s *Store) New(r *http.Request, name string) (*sessions.Session, error) {
	sess := sessions.NewSession(s, name)
	opts := *s.Options
	sess.Options = &opts
	sess.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return sess, nil
	}

	if err := securecookie.DecodeMulti(name, cookie.Value, &sess.ID, s.Codecs...); err != nil {
		sess.ID = ""
		return sess, fmt.Errorf("session: decode cookie: %w", err)
	}

	data, err := s.backend.Load(r.Context(), sess.ID)
	if errors.Is(err, ErrNotFound) {
		// never adopt an id the server does not know about
		sess.ID = ""
		return sess, nil
	}

	if err != nil {
		sess.ID = ""
		return sess, err
	}

	if err := securecookie.DecodeMulti(name, data, &sess.Values, s.Codecs...); err != nil {
		sess.ID = ""
		sess.Values = make(map[interface{}]interface{})
		return sess, fmt.Errorf("session: decode values: %w", err)
	}

	sess.IsNew = false
	return sess, nil
}

// persists values and writes the id cookie; MaxAge < 0 destroys the session
func (s *Store) Save(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	if sess.Options.MaxAge < 0 {
		if sess.ID != "" {
			if err := s.backend.Delete(r.Context(), sess.ID); err != nil {
				return err
			}
		}

		http.SetCookie(w, sessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}

	if sess.ID == "" {
		id, err := GenerateID()
		if err != nil {
			return err
		}
		sess.ID = id
	}

	data, err := securecookie.EncodeMulti(sess.Name(), sess.Values, s.Codecs...)
	if err != nil {
		return fmt.Errorf("session: encode values: %w", err)
	}

	if err := s.backend.Save(r.Context(), sess.ID, data, s.ttl); err != nil {
		return err
	}

	encodedID, err := securecookie.EncodeMulti(sess.Name(), sess.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("session: encode id: %w", err)
	}

	http.SetCookie(w, sessions.NewCookie(sess.Name(), encodedID, sess.Options))
	return nil
}

// drops the backend record for the current id so the next Save issues a new one
func (s *Store) retire(r *http.Request, sess *sessions.Session) error {
	if sess.ID == "" {
		return nil
	}

	if err := s.backend.Delete(r.Context(), sess.ID); err != nil {
		return err
	}

	sess.ID = ""
	return nil
}
