package admin

import (
	"codeberg.org/actas/server/actas/impersonation"
	"codeberg.org/actas/server/actas/users"
	"codeberg.org/actas/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the user views; there is no role check, only sign-in. Expects
// impersonation.Share to have run so the pages carry the banner.
func RegisterRoutes(router gin.IRouter, store users.Store) {
	admin := router.Group("/admin")
	admin.Use(auth.RequireAuth(), impersonation.Detect())

	admin.GET("/users", ListUsers(store))
	admin.GET("/users/:id", GetUser(store))
}
