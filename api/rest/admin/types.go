package admin

import (
	"codeberg.org/actas/server/actas/users"
	"codeberg.org/actas/server/api/rest/pagination"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// UserListResponse is one page of local users
type UserListResponse struct {
	Users      []users.User    `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}

// UserResponse wraps a single user
type UserResponse struct {
	User *users.User `json:"user"`
}
