package impersonation

import (
	"net/http"

	"codeberg.org/actas/server/actas/impersonation"
	"codeberg.org/actas/server/internal/errors"
	"codeberg.org/actas/server/internal/session"
	"github.com/gin-gonic/gin"
)

// StatusHandler godoc
// @Summary Impersonation status
// @Description Reports whether the current session is impersonated and by whom
// @Tags impersonation
// @Produce json
// @Success 200 {object} impersonation.Status
// @Failure 401 {object} errors.ErrorResponse
// @Router /impersonation/status [get]
func StatusHandler(gateway *impersonation.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gateway.Status(session.FromGin(c)))
	}
}

// BannerHandler godoc
// @Summary Impersonation banner data
// @Tags impersonation
// @Produce json
// @Success 200 {object} BannerResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /impersonation/banner [get]
func BannerHandler(gateway *impersonation.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, BannerResponse{
			Impersonation: gateway.BannerData(session.FromGin(c)),
		})
	}
}

// StopHandler godoc
// @Summary Stop impersonating
// @Description Clears impersonation, ends the session and sends the browser to logout
// @Tags impersonation
// @Param X-CSRF-Token header string true "Anti-forgery token"
// @Success 302 {string} string "Redirect to /logout"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /impersonation/stop [post]
func StopHandler(gateway *impersonation.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		path, err := gateway.Stop(c.Request.Context(), session.FromGin(c))
		if err != nil {
			errors.InternalError(c, "failed to stop impersonation", err)
			return
		}

		c.Redirect(http.StatusFound, path)
	}
}
