package tasks

import (
	"testing"
	"time"

	"servicehub/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTaskRoundTrip(t *testing.T) {
	event := models.DomainEvent{
		Type:       models.EventBookingConfirmed,
		UserID:     "u1",
		ProviderID: "p1",
		BookingID:  "b1",
		Status:     models.BookingStatusConfirmed,
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	task, opts, err := NewEventTask(event, "notifications", 3)
	require.NoError(t, err)
	assert.Equal(t, models.EventBookingConfirmed, task.Type())
	assert.Len(t, opts, 2)

	got, err := ParseEventTask(task)
	require.NoError(t, err)
	assert.Equal(t, event, got)
}

func TestNewEventTaskRequiresType(t *testing.T) {
	_, _, err := NewEventTask(models.DomainEvent{}, "notifications", 3)
	assert.Error(t, err)
}

func TestParseEventTaskRejectsGarbage(t *testing.T) {
	_, err := ParseEventTask(asynq.NewTask(models.EventReviewAdded, []byte("{")))
	assert.Error(t, err)
}
