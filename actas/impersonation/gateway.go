package impersonation

import (
	"context"
	"fmt"

	"codeberg.org/actas/server/internal/events"
)

// Gateway is what pages and endpoints use to show and end impersonation
type Gateway struct {
	events events.Emitter
}

func NewGateway(emitter events.Emitter) *Gateway {
	return &Gateway{events: events.OrNop(emitter)}
}

func (g *Gateway) Status(sess Session) Status {
	record := NewStore(sess).Get()
	return Status{
		IsImpersonating: record != nil,
		Impersonator:    record,
	}
}

// the record to render in the banner, nil when there is nothing to show
func (g *Gateway) BannerData(sess Session) *Record {
	return NewStore(sess).Get()
}

// ends impersonation: clears the slot, invalidates the whole session and
// returns the path to send the browser to. Calling it again on an already
// stopped session just invalidates the fresh one.
func (g *Gateway) Stop(ctx context.Context, sess Terminable) (string, error) {
	store := NewStore(sess)
	record := store.Get()
	userID := sess.UserID()

	store.Clear()

	if err := sess.Invalidate(); err != nil {
		return "", fmt.Errorf("failed to invalidate session: %w", err)
	}

	data := map[string]any{"was_impersonating": record != nil}
	if record != nil {
		data["impersonator"] = record.Email
	}

	g.events.Emit(ctx, events.Event{
		Type:   events.TypeImpersonationStopped,
		UserID: userID,
		Data:   data,
	})

	return LogoutPath, nil
}
