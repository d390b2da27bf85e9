package domain

import "time"

// DomainEvent is a fact recorded by an aggregate operation. Events
// accumulate in-process on the aggregate and are drained by whatever
// persists or publishes them; the event name doubles as the routing key
// when events are published to the broker.
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// eventRecorder is the append-only event buffer embedded in every
// aggregate root.
type eventRecorder struct {
	events []DomainEvent
}

func (r *eventRecorder) record(e DomainEvent) {
	r.events = append(r.events, e)
}

// Events returns a copy of the pending events in registration order.
func (r *eventRecorder) Events() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// ClearEvents drops all pending events. Called by the persistence
// adapter after the aggregate and its events have been saved or published.
func (r *eventRecorder) ClearEvents() {
	r.events = nil
}
