package impersonation

import (
	"codeberg.org/actas/server/actas/impersonation"
	"codeberg.org/actas/server/internal/auth"
	"codeberg.org/actas/server/internal/session"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router gin.IRouter, gateway *impersonation.Gateway) {
	group := router.Group("/impersonation")
	group.Use(auth.RequireAuth())

	group.GET("/status", StatusHandler(gateway))
	group.GET("/banner", BannerHandler(gateway))
	group.POST("/stop", session.VerifyCSRF(), StopHandler(gateway))
}
