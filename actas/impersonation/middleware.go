package impersonation

import (
	"codeberg.org/actas/server/internal/auth"
	"codeberg.org/actas/server/internal/logger"
	"codeberg.org/actas/server/internal/session"
	"github.com/gin-gonic/gin"
)

// reads the impersonation slot on every request and exposes it via FromGin.
// Runs after session.Middleware; nothing is cached between requests.
func Share() gin.HandlerFunc {
	return func(c *gin.Context) {
		var record *Record
		if sc := session.FromGin(c); sc != nil {
			record = NewStore(sc).Get()
		}

		c.Set(ContextKey, record)
		c.Next()
	}
}

// returns the record shared for this request
func FromGin(c *gin.Context) *Record {
	v, exists := c.Get(ContextKey)
	if !exists {
		return nil
	}

	record, _ := v.(*Record)
	return record
}

// logs impersonated requests at debug level. Runs after auth.RequireAuth
// or auth.RequireAuthPage so the impersonated account is known.
func Detect() gin.HandlerFunc {
	return func(c *gin.Context) {
		if record := FromGin(c); record != nil {
			userID, _ := auth.GetUserID(c)
			logger.Debug("impersonated request",
				"impersonator", record.Email,
				"user_id", userID,
				"path", c.Request.URL.Path,
			)
		}

		c.Next()
	}
}
