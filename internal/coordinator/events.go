package coordinator

import "time"

// Event represents a coordinator lifecycle event.
// Minimal and stable: name + suite name and optional fields via key/values.
type Event struct {
	Name   string
	Suite  string
	At     time.Time
	Fields map[string]any
}

// EventPublisher receives events from the coordinator. Implementations
// should be lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

func (c *Coordinator) publish(name, suite string, fields map[string]any) {
	c.publisher.Publish(Event{Name: name, Suite: suite, At: time.Now(), Fields: fields})
}
