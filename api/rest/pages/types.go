package pages

import (
	"context"

	"codeberg.org/actas/server/actas/impersonation"
	"codeberg.org/actas/server/actas/users"
)

const (
	ComponentWelcome    = "welcome"
	ComponentDashboard  = "dashboard"
	ComponentAdminUsers = "admin/users"
	ComponentAdminUser  = "admin/user"
)

// Page is the JSON a client-side page renders from
type Page struct {
	Component string `json:"component"`
	URL       string `json:"url"`
	Props     Props  `json:"props"`
	Data      any    `json:"data,omitempty"`
}

// Props shared by every page
type Props struct {
	Impersonation *impersonation.Record `json:"impersonation"`
	User          *users.User           `json:"user"`
	CSRFToken     string                `json:"csrf_token"`
}

// looks users up by id
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*users.User, error)
}
