package tasks

import (
	"encoding/json"
	"fmt"

	"servicehub/models"

	"github.com/hibiken/asynq"
)

// EventTypes lists every task type carrying a models.DomainEvent.
var EventTypes = []string{
	models.EventBookingCreated,
	models.EventBookingConfirmed,
	models.EventBookingCompleted,
	models.EventBookingCancelled,
	models.EventReviewAdded,
}

// NewEventTask wraps event in a task whose type is the event type.
func NewEventTask(event models.DomainEvent, queue string, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	if event.Type == "" {
		return nil, nil, fmt.Errorf("event type is required")
	}
	b, err := json.Marshal(event)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(event.Type, b)
	opts := []asynq.Option{asynq.Queue(queue), asynq.MaxRetry(maxRetry)}

	return task, opts, nil
}

// ParseEventTask decodes the event carried by task.
func ParseEventTask(task *asynq.Task) (models.DomainEvent, error) {
	var event models.DomainEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		return models.DomainEvent{}, fmt.Errorf("invalid %s payload: %w", task.Type(), err)
	}
	if event.Type == "" {
		event.Type = task.Type()
	}
	return event, nil
}
