package admin

import (
	stderrors "errors"

	"codeberg.org/actas/server/actas/users"
	"codeberg.org/actas/server/api/rest/pages"
	"codeberg.org/actas/server/api/rest/pagination"
	"codeberg.org/actas/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// ListUsers godoc
// @Summary List users
// @Description Newest first, inside the shared page envelope. Any signed-in user may view this list.
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} pages.Page{data=UserListResponse}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users [get]
func ListUsers(store users.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := pagination.FromQuery(c, defaultPageSize, maxPageSize)

		list, total, err := store.List(c.Request.Context(), params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list users", err)
			return
		}

		pages.Respond(c, store, pages.ComponentAdminUsers, UserListResponse{
			Users:      list,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetUser godoc
// @Summary Get a user
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} pages.Page{data=UserResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id} [get]
func GetUser(store users.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := errors.ValidatePathUUID(c, "id", "user")
		if !ok {
			return
		}

		user, err := store.FindByID(c.Request.Context(), userID)
		if stderrors.Is(err, users.ErrNotFound) {
			errors.NotFound(c, "user")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to load user", err)
			return
		}

		pages.Respond(c, store, pages.ComponentAdminUser, UserResponse{User: user})
	}
}
