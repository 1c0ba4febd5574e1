package auth

import (
	"net/http"

	"codeberg.org/actas/server/internal/errors"
	"codeberg.org/actas/server/internal/session"
	"github.com/gin-gonic/gin"
)

// rejects requests without an authenticated session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := session.FromGin(c)
		if sc == nil || !sc.IsAuthenticated() {
			errors.Unauthorized(c, "authentication required")
			return
		}

		c.Set(contextUserID, sc.UserID())
		c.Next()
	}
}

// like RequireAuth but sends browsers to the login page
func RequireAuthPage(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := session.FromGin(c)
		if sc == nil || !sc.IsAuthenticated() {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(contextUserID, sc.UserID())
		c.Next()
	}
}

// guest-only routes: signed-in users are sent to path instead
func RedirectIfAuthenticated(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sc := session.FromGin(c); sc != nil && sc.IsAuthenticated() {
			c.Redirect(http.StatusFound, path)
			c.Abort()
			return
		}

		c.Next()
	}
}

// extracts user_id from context after RequireAuth
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(contextUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok
}
