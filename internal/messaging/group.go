package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Runnable represents a component that can be started and shutdown.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown() error
}

type topicReader interface {
	Topic() string
}

// ConsumerGroup runs consumers that share one subscriber. Shutting the group
// down stops every consumer before the subscriber is closed.
type ConsumerGroup struct {
	consumers  []Runnable
	subscriber message.Subscriber
	logger     *zap.Logger
}

// NewConsumerGroup creates a new consumer group.
func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Add registers a consumer to the group.
func (g *ConsumerGroup) Add(consumer Runnable) {
	g.consumers = append(g.consumers, consumer)
}

// Topics returns the topics of the registered consumers that expose one.
func (g *ConsumerGroup) Topics() []string {
	topics := make([]string, 0, len(g.consumers))

	for _, consumer := range g.consumers {
		if t, ok := consumer.(topicReader); ok {
			topics = append(topics, t.Topic())
		}
	}

	return topics
}

// Start starts every consumer. If one fails, those already started are
// shut down again and the error is returned.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	for i, consumer := range g.consumers {
		if err := consumer.Start(ctx); err != nil {
			for _, started := range g.consumers[:i] {
				_ = started.Shutdown()
			}

			return fmt.Errorf("start consumer %d: %w", i, err)
		}
	}

	g.logger.Info("consumer group started",
		zap.Int("count", len(g.consumers)),
		zap.Strings("topics", g.Topics()),
	)

	return nil
}

// Shutdown stops every consumer, then closes the subscriber. All errors are
// returned joined.
func (g *ConsumerGroup) Shutdown() error {
	g.logger.Info("shutting down consumer group")

	var errs []error

	for _, consumer := range g.consumers {
		if err := consumer.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := g.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close subscriber: %w", err))
	}

	return errors.Join(errs...)
}
