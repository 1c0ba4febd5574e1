package impersonation

import "encoding/gob"

const (
	// session slot holding the current Record
	SessionKey = "impersonation"

	// gin context key set by Share
	ContextKey = "impersonation"

	// where the browser goes after impersonation ends
	LogoutPath = "/logout"
)

func init() {
	// session values are gob encoded
	gob.Register(Record{})
}

// Record describes who is acting on behalf of the signed-in user.
// Reason is nil when the provider gave none.
type Record struct {
	Email  string  `json:"email"`
	Reason *string `json:"reason"`
}

// Status is the answer to "is this session impersonated, and by whom"
type Status struct {
	IsImpersonating bool    `json:"is_impersonating"`
	Impersonator    *Record `json:"impersonator"`
}

// Session is the slice of the session handle the state store needs
type Session interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
}

// Terminable is a session the gateway can end
type Terminable interface {
	Session
	UserID() string
	Invalidate() error
}
