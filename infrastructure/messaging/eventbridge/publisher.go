// Package eventbridge publishes digest lifecycle events to AWS EventBridge.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"newsagg-backend/application/ports"
	"newsagg-backend/domain/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

// EventBridgePublisher implements the EventPublisher port using AWS EventBridge
type EventBridgePublisher struct {
	client       *awseventbridge.Client
	eventBusName string
	source       string
	logger       *zap.Logger
}

// NewEventBridgePublisher creates a new EventBridge publisher
func NewEventBridgePublisher(
	client *awseventbridge.Client,
	eventBusName string,
	logger *zap.Logger,
) ports.EventPublisher {
	return &EventBridgePublisher{
		client:       client,
		eventBusName: eventBusName,
		source:       events.Source,
		logger:       logger,
	}
}

// Publish sends a single event to EventBridge
func (p *EventBridgePublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch sends multiple events to EventBridge
func (p *EventBridgePublisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}

	// EventBridge limits to 10 events per PutEvents call
	const batchSize = 10

	for i := 0; i < len(domainEvents); i += batchSize {
		end := i + batchSize
		if end > len(domainEvents) {
			end = len(domainEvents)
		}

		if err := p.publishBatch(ctx, domainEvents[i:end]); err != nil {
			return err
		}
	}

	return nil
}

// publishBatch publishes a batch of events (max 10)
func (p *EventBridgePublisher) publishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	entries := make([]types.PutEventsRequestEntry, 0, len(domainEvents))

	for _, event := range domainEvents {
		eventData, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("Failed to marshal event",
				zap.Error(err),
				zap.String("eventType", event.GetEventType()),
			)
			return fmt.Errorf("failed to marshal event %s: %w", event.GetEventType(), err)
		}

		entries = append(entries, types.PutEventsRequestEntry{
			EventBusName: aws.String(p.eventBusName),
			Source:       aws.String(p.source),
			DetailType:   aws.String(event.GetEventType()),
			Detail:       aws.String(string(eventData)),
			Time:         aws.Time(event.GetTimestamp()),
		})
	}

	out, err := p.client.PutEvents(ctx, &awseventbridge.PutEventsInput{
		Entries: entries,
	})
	if err != nil {
		p.logger.Error("Failed to publish events",
			zap.Error(err),
			zap.Int("count", len(entries)),
		)
		return fmt.Errorf("failed to publish events: %w", err)
	}

	if out.FailedEntryCount > 0 {
		p.logger.Warn("Some events failed to publish",
			zap.Int32("failedCount", out.FailedEntryCount),
		)
		return fmt.Errorf("%d of %d events failed to publish", out.FailedEntryCount, len(entries))
	}

	p.logger.Debug("Published events",
		zap.Int("count", len(entries)),
	)

	return nil
}
