package authflow

import (
	"context"
	"fmt"

	"codeberg.org/actas/server/actas/impersonation"
	"codeberg.org/actas/server/actas/users"
	"codeberg.org/actas/server/internal/claims"
	"codeberg.org/actas/server/internal/events"
	"github.com/google/uuid"
	"github.com/markbates/goth"
)

// Orchestrator runs one login callback from code to established session.
type Orchestrator struct {
	exchanger  Exchanger
	reconciler Reconciler
	events     events.Emitter
}

func New(exchanger Exchanger, reconciler Reconciler, emitter events.Emitter) *Orchestrator {
	return &Orchestrator{
		exchanger:  exchanger,
		reconciler: reconciler,
		events:     events.OrNop(emitter),
	}
}

// attempt tracks the state of a single Authenticate call
type attempt struct {
	id     string
	state  State
	events events.Emitter
	ctx    context.Context
}

func (a *attempt) transition(next State, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["from"] = string(a.state)

	a.events.Emit(a.ctx, events.Event{
		Type:    events.TypeAuthTransition,
		Attempt: a.id,
		State:   string(next),
		Data:    data,
	})

	a.state = next
}

func (a *attempt) fail(f *Failure) *Failure {
	data := map[string]any{"from": string(a.state)}
	if f.Err != nil {
		data["error"] = f.Err.Error()
	}

	a.events.Emit(a.ctx, events.Event{
		Type:    events.TypeAuthTransition,
		Attempt: a.id,
		State:   string(StateFailed),
		Reason:  string(f.Reason),
		Data:    data,
	})

	a.state = StateFailed
	return f
}

// exchanges code, records impersonation, reconciles the user and rebuilds
// the session. The session is only touched once every remote step has
// succeeded, and its id is regenerated last. The OAuth state parameter is
// not checked here: provider-initiated impersonation arrives without a
// state this server issued.
func (o *Orchestrator) Authenticate(ctx context.Context, sess Session, code string) (result *Result, err error) {
	a := &attempt{id: uuid.NewString(), state: StateAwaitingCode, events: o.events, ctx: ctx}

	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = a.fail(newFailure(ReasonUnknownError, fmt.Errorf("panic: %v", p)))
		}
	}()

	if code == "" {
		return nil, a.fail(newFailure(ReasonMissingCode, nil))
	}

	a.transition(StateExchanging, nil)

	gu, err := o.exchanger.Exchange(ctx, code)
	if err != nil {
		return nil, a.fail(newFailure(ReasonExchangeError, err))
	}

	// an unreadable token means no impersonation, never a failed login
	tokenClaims, _ := claims.Decode(gu.AccessToken)

	a.transition(StateClaimsCheck, map[string]any{
		"external_id":   gu.UserID,
		"token_subject": tokenClaims.Subject(),
		"claims":        tokenClaims.Keys(),
	})

	record := impersonationFrom(tokenClaims)

	a.transition(StateReconciling, map[string]any{"impersonated": record != nil})

	user, err := o.reconciler.Reconcile(ctx, identityFrom(gu))
	if err != nil {
		return nil, a.fail(newFailure(ReasonUnknownError, err))
	}

	sess.Login(user.ID)
	sess.StoreTokens(gu.AccessToken, gu.RefreshToken)

	store := impersonation.NewStore(sess)
	if record != nil {
		store.Set(*record)
	} else {
		store.Clear()
	}

	if err := sess.Regenerate(); err != nil {
		return nil, a.fail(newFailure(ReasonUnknownError, err))
	}

	a.transition(StateSessionEstablished, map[string]any{"user_id": user.ID})

	return &Result{
		User:          user,
		Impersonation: record,
		RedirectTo:    DashboardPath,
	}, nil
}

func impersonationFrom(c *claims.Claims) *impersonation.Record {
	actor, ok := c.Actor()
	if !ok {
		return nil
	}

	return &impersonation.Record{Email: actor.Subject, Reason: actor.Reason}
}

func identityFrom(gu goth.User) users.ExternalIdentity {
	return users.ExternalIdentity{
		ID:        gu.UserID,
		FirstName: gu.FirstName,
		LastName:  gu.LastName,
		Email:     gu.Email,
		AvatarURL: gu.AvatarURL,
	}
}
