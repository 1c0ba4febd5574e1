package pages

import (
	"codeberg.org/actas/server/actas/impersonation"
	"codeberg.org/actas/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the home and dashboard pages. Both expect impersonation.Share
// to have run.
func RegisterRoutes(router gin.IRouter, finder UserFinder, loginPath string) {
	router.GET("/", Render(finder, ComponentWelcome))

	router.GET("/dashboard",
		auth.RequireAuthPage(loginPath),
		impersonation.Detect(),
		Render(finder, ComponentDashboard),
	)
}
