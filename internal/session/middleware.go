package session

import (
	"crypto/subtle"
	"net/http"

	"codeberg.org/actas/server/internal/errors"
	"codeberg.org/actas/server/internal/logger"
	"github.com/gin-gonic/gin"
)

const ginContextKey = "session"

// opens the session for every request and exposes it via FromGin
func Middleware(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, err := store.Open(c.Writer, c.Request)
		if err != nil {
			// unreadable or stale cookie: continue with a fresh session
			logger.Debug("starting fresh session", "error", err, "path", c.Request.URL.Path)
		}

		c.Set(ginContextKey, sc)
		c.Next()
	}
}

// returns the session opened by Middleware
func FromGin(c *gin.Context) *Context {
	v, exists := c.Get(ginContextKey)
	if !exists {
		return nil
	}

	sc, _ := v.(*Context)
	return sc
}

// rejects state-changing requests whose anti-forgery token does not match
func VerifyCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		sc := FromGin(c)
		if sc == nil {
			errors.CSRFMismatch(c)
			return
		}

		expected := sc.GetString(KeyCSRFToken)

		given := c.GetHeader(CSRFHeader)
		if given == "" {
			given = c.PostForm(CSRFField)
		}

		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(given)) != 1 {
			errors.CSRFMismatch(c)
			return
		}

		c.Next()
	}
}
