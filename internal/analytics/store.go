package analytics

import "context"

// Store defines the interface for persisting analytics events.
type Store interface {
	SaveEvent(ctx context.Context, event *Event) error
}
