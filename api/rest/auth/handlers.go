package auth

import (
	"net/http"

	"codeberg.org/actas/server/actas/authflow"
	"codeberg.org/actas/server/internal/errors"
	"codeberg.org/actas/server/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
)

// LoginHandler godoc
// @Summary Start sign-in
// @Description Redirects to the identity provider's hosted login page
// @Tags auth
// @Success 302 {string} string "Redirect to identity provider"
// @Router /login [get]
func LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// AuthenticateHandler godoc
// @Summary Identity provider callback
// @Description Exchanges the authorization code, records impersonation and signs the user in.
// @Description The state parameter is not verified here: impersonation sessions started from
// @Description the provider's dashboard reach this endpoint without a state this server issued.
// @Tags auth
// @Param code query string true "Authorization code"
// @Param state query string false "OAuth state (ignored)"
// @Success 302 {string} string "Redirect to dashboard"
// @Failure 403 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /authenticate [get]
func AuthenticateHandler(orchestrator *authflow.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := session.FromGin(c)
		if sc == nil {
			errors.AuthenticationFailed(c, authflow.FailureMessage)
			return
		}

		result, err := orchestrator.Authenticate(c.Request.Context(), sc, c.Query("code"))
		if err != nil {
			errors.AuthenticationFailed(c, authflow.FailureMessage)
			return
		}

		c.Redirect(http.StatusFound, result.RedirectTo)
	}
}

// LogoutHandler godoc
// @Summary Logout
// @Description Ends the session and rotates its id and anti-forgery token
// @Tags auth
// @Success 302 {string} string "Redirect to home"
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logout [post]
// @Router /logout [get]
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sc := session.FromGin(c); sc != nil {
			if err := sc.Invalidate(); err != nil {
				errors.InternalError(c, "failed to end session", err)
				return
			}
		}

		c.Redirect(http.StatusFound, HomePath)
	}
}
