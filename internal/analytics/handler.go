package analytics

import (
	"context"
	"fmt"

	"github.com/serroba/portal-api/internal/messaging"
)

// NewEventHandler returns a consumer handler that persists events to store.
// Events of unknown type are skipped rather than retried.
func NewEventHandler(store Store) messaging.Handler[Event] {
	return func(ctx context.Context, event *Event) error {
		if !event.Type.Valid() {
			return nil
		}

		if err := store.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("save %s event: %w", event.Type, err)
		}

		return nil
	}
}
