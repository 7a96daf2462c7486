package notification

import (
	"context"
	"time"

	"servicehub/models"
	"servicehub/services/tasks"
	"servicehub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const defaultMaxRetry = 5

// enqueuer is the part of *asynq.Client the publisher needs.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqPublisher enqueues events on the notifications queue.
type AsynqPublisher struct {
	client enqueuer
	logger *zap.Logger
}

func NewAsynqPublisher(client *asynq.Client, logger *zap.Logger) *AsynqPublisher {
	return &AsynqPublisher{client: client, logger: logger}
}

func (p *AsynqPublisher) Publish(ctx context.Context, event models.DomainEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	log := p.logger.With(zap.String("event", event.Type),
		zap.String("booking_id", event.BookingID),
		zap.String("provider_id", event.ProviderID))

	task, opts, err := tasks.NewEventTask(event, utils.NotificationQueue, defaultMaxRetry)
	if err != nil {
		log.Error("Failed to build notification task", zap.Error(err))
		return
	}

	// The producing request may already be finished.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	info, err := p.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		log.Error("Failed to enqueue notification", zap.Error(err))
		return
	}
	log.Debug("Notification enqueued", zap.String("task_id", info.ID))
}
