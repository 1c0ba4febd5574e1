package authflow

import (
	"context"
	"fmt"

	"codeberg.org/actas/server/actas/impersonation"
	"codeberg.org/actas/server/actas/users"
	"github.com/markbates/goth"
)

type State string

const (
	StateAwaitingCode       State = "awaiting_code"
	StateExchanging         State = "exchanging"
	StateClaimsCheck        State = "claims_check"
	StateReconciling        State = "reconciling"
	StateSessionEstablished State = "session_established"
	StateFailed             State = "failed"
)

type Reason string

const (
	ReasonMissingCode   Reason = "missing_code"
	ReasonExchangeError Reason = "exchange_error"
	ReasonUnknownError  Reason = "unknown_error"
)

const DashboardPath = "/dashboard"

// the only text a failed attempt shows the browser, whatever the reason
const FailureMessage = "Sign-in could not be completed"

// Failure is returned for every unsuccessful attempt. Reason and Err go to
// the transition event and never to the client.
type Failure struct {
	Reason Reason
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("authentication failed (%s): %v", f.Reason, f.Err)
	}

	return fmt.Sprintf("authentication failed (%s)", f.Reason)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func newFailure(reason Reason, err error) *Failure {
	return &Failure{Reason: reason, Err: err}
}

// trades an authorization code for tokens and the provider's user profile
type Exchanger interface {
	Exchange(ctx context.Context, code string) (goth.User, error)
}

type Reconciler interface {
	Reconcile(ctx context.Context, identity users.ExternalIdentity) (*users.User, error)
}

// the session operations a login needs
type Session interface {
	impersonation.Session
	Login(userID string)
	StoreTokens(accessToken, refreshToken string)
	Regenerate() error
}

type Result struct {
	User          *users.User
	Impersonation *impersonation.Record
	RedirectTo    string
}
