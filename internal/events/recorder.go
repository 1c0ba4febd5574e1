package events

import (
	"context"
	"sync"
)

// keeps every event in memory; used by tests to assert on emitted sequences
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, stamp(e))
}

// returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// returns the recorded events of one type
func (r *Recorder) OfType(eventType string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == eventType {
			out = append(out, e)
		}
	}

	return out
}

// returns the state of each recorded auth transition in order
func (r *Recorder) States() []string {
	var states []string
	for _, e := range r.OfType(TypeAuthTransition) {
		states = append(states, e.State)
	}

	return states
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
}
