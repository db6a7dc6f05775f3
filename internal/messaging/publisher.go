package messaging

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish is a function that publishes a typed event.
type Publish[T any] func(ctx context.Context, event *T) error

// MetadataCarrier is implemented by events that expose message metadata,
// such as an event type consumers can route on without decoding the payload.
type MetadataCarrier interface {
	MessageMetadata() map[string]string
}

// NewPublishFunc creates a typed publish function for a specific topic.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(ctx context.Context, event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.SetContext(ctx)

		if carrier, ok := any(event).(MetadataCarrier); ok {
			for k, v := range carrier.MessageMetadata() {
				msg.Metadata.Set(k, v)
			}
		}

		return publisher.Publish(topic, msg)
	}
}

// Discard returns a publish function that drops every event.
func Discard[T any]() Publish[T] {
	return func(_ context.Context, _ *T) error { return nil }
}

// PublisherGroup manages the underlying publisher lifecycle.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup creates a new publisher group.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher returns the underlying message publisher for creating typed publish functions.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher. A nil group is a no-op.
func (g *PublisherGroup) Shutdown() error {
	if g == nil {
		return nil
	}

	return g.publisher.Close()
}
