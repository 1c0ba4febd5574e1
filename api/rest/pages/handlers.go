package pages

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/actas/server/actas/impersonation"
	"codeberg.org/actas/server/actas/users"
	"codeberg.org/actas/server/internal/errors"
	"codeberg.org/actas/server/internal/session"
	"github.com/gin-gonic/gin"
)

// renders a page with the shared props filled in
func Render(finder UserFinder, component string) gin.HandlerFunc {
	return func(c *gin.Context) {
		Respond(c, finder, component, nil)
	}
}

// writes the page envelope for component. data carries the page's own
// content next to the shared props.
func Respond(c *gin.Context, finder UserFinder, component string, data any) {
	sc := session.FromGin(c)
	if sc == nil {
		errors.InternalError(c, "session unavailable", nil)
		return
	}

	token, minted, err := sc.EnsureCSRFToken()
	if err != nil {
		errors.InternalError(c, "failed to issue csrf token", err)
		return
	}

	if minted {
		if err := sc.Save(); err != nil {
			errors.InternalError(c, "failed to save session", err)
			return
		}
	}

	var user *users.User
	if sc.IsAuthenticated() {
		user, err = finder.FindByID(c.Request.Context(), sc.UserID())
		if err != nil && !stderrors.Is(err, users.ErrNotFound) {
			errors.InternalError(c, "failed to load user", err)
			return
		}
	}

	c.JSON(http.StatusOK, Page{
		Component: component,
		URL:       c.Request.URL.RequestURI(),
		Props: Props{
			Impersonation: impersonation.FromGin(c),
			User:          user,
			CSRFToken:     token,
		},
		Data: data,
	})
}
