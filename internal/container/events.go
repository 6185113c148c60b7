package container

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/events"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

// AuditConsumerGroup is the Redis Streams consumer group of cmd/consumer.
const AuditConsumerGroup = "shortlink-audit"

// PublisherGroupPackage provides the Redis Streams *messaging.PublisherGroup.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*RedisClient](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: client.UniversalClient},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("create redis stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// EventsPackage provides the mapping.created publish function. With events
// disabled, events are discarded and Redis is never contacted.
func EventsPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (messaging.Publish[events.MappingCreatedEvent], error) {
		opts := do.MustInvoke[*Options](i)
		if !opts.Events {
			return messaging.Discard[events.MappingCreatedEvent](), nil
		}

		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[events.MappingCreatedEvent](group.Publisher(), events.TopicMappingCreated), nil
	})
}

// ConsumerGroupPackage provides the audit *messaging.ConsumerGroup.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*RedisClient](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        client.UniversalClient,
				ConsumerGroup: AuditConsumerGroup,
			},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("create redis stream subscriber: %w", err)
		}

		audit := events.NewAuditLog(logger)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber,
			events.TopicMappingCreated,
			audit.HandleMappingCreated,
			logger,
		))

		return group, nil
	})
}
