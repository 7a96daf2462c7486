package notification

import (
	"context"

	"servicehub/models"
)

// Publisher hands domain events to the notification collaborator. Publishing is
// fire-and-forget from the caller's point of view: failures are logged, never
// surfaced to the operation that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event models.DomainEvent)
}

// NotificationService delivers a consumed event to its recipients.
type NotificationService interface {
	Deliver(ctx context.Context, event models.DomainEvent) error
}

// NoopPublisher drops every event. Used when notifications are disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.DomainEvent) {}
