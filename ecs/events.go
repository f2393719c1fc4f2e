package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// MotionEventKind identifies character motion events.
type MotionEventKind string

const (
	MotionEventJumped  MotionEventKind = "jumped"
	MotionEventLanded  MotionEventKind = "landed"
	MotionEventFlipped MotionEventKind = "flipped"
)

// MotionEvent is emitted by the presentation side of a character.
type MotionEvent struct {
	Entity Entity
	Kind   MotionEventKind
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
