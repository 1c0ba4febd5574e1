package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// fills id and timestamp when the emitter is given a bare event
func stamp(e Event) Event {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	return e
}

// fans one event out to several emitters
type Multi []Emitter

func (m Multi) Emit(ctx context.Context, e Event) {
	e = stamp(e)
	for _, emitter := range m {
		if emitter != nil {
			emitter.Emit(ctx, e)
		}
	}
}

// discards everything
type Nop struct{}

func (Nop) Emit(context.Context, Event) {}

// returns a usable emitter, falling back to Nop
func OrNop(e Emitter) Emitter {
	if e == nil {
		return Nop{}
	}

	return e
}
