// Package events publishes board change notifications so other processes
// (live views, caches) can refresh after a write commits.
package events

import "context"

// Publisher defines the interface for sending change events.
// This interface allows for loose coupling and easier testing by depending
// on behavior rather than concrete implementation.
type Publisher interface {
	// Publish sends one event. Implementations must be safe for concurrent use.
	Publish(ctx context.Context, event Event) error

	// Close releases the publisher's resources
	Close() error
}

// Compile-time verification that the implementations satisfy Publisher
var (
	_ Publisher = (*RedisPublisher)(nil)
	_ Publisher = Nop{}
)

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

// Publish implements Publisher
func (Nop) Publish(context.Context, Event) error { return nil }

// Close implements Publisher
func (Nop) Close() error { return nil }
