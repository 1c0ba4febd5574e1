package auth

import (
	"codeberg.org/actas/server/actas/authflow"
	"codeberg.org/actas/server/internal/auth"
	"codeberg.org/actas/server/internal/session"
	"github.com/gin-gonic/gin"
)

// registers sign-in and sign-out routes. limit guards the endpoints that
// reach the identity provider.
func RegisterRoutes(router gin.IRouter, orchestrator *authflow.Orchestrator, limit gin.HandlerFunc) {
	router.GET("/login", limit, auth.RedirectIfAuthenticated(authflow.DashboardPath), LoginHandler())

	// not guest-only: impersonation can start while another session is open
	router.GET("/authenticate", limit, AuthenticateHandler(orchestrator))

	router.POST("/logout", auth.RequireAuth(), session.VerifyCSRF(), LogoutHandler())

	// plain link used by the stop-impersonation redirect
	router.GET("/logout", LogoutHandler())
}
