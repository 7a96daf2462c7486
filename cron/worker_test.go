package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"servicehub/models"
	"servicehub/services/tasks"
	"servicehub/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Deliver(ctx context.Context, event models.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}

func eventTask(t *testing.T, event models.DomainEvent) *asynq.Task {
	task, _, err := tasks.NewEventTask(event, utils.NotificationQueue, 3)
	require.NoError(t, err)
	return task
}

func TestNotificationMuxDeliversEveryEventType(t *testing.T) {
	svc := new(mockNotifier)
	svc.On("Deliver", mock.Anything, mock.AnythingOfType("models.DomainEvent")).Return(nil)
	mux := NewNotificationMux(svc, zaptest.NewLogger(t))

	for _, typ := range tasks.EventTypes {
		event := models.DomainEvent{Type: typ, BookingID: "B1", OccurredAt: time.Now().UTC()}
		require.NoError(t, mux.ProcessTask(context.Background(), eventTask(t, event)), typ)
	}
	svc.AssertNumberOfCalls(t, "Deliver", len(tasks.EventTypes))
}

func TestNotificationMuxPropagatesDeliveryFailure(t *testing.T) {
	svc := new(mockNotifier)
	boom := errors.New("push backend down")
	svc.On("Deliver", mock.Anything, mock.Anything).Return(boom)
	mux := NewNotificationMux(svc, zaptest.NewLogger(t))

	err := mux.ProcessTask(context.Background(), eventTask(t, models.DomainEvent{Type: models.EventBookingCreated, BookingID: "B1"}))
	assert.ErrorIs(t, err, boom)
}

func TestNotificationMuxSkipsRetryForMalformedPayload(t *testing.T) {
	svc := new(mockNotifier)
	mux := NewNotificationMux(svc, zaptest.NewLogger(t))

	err := mux.ProcessTask(context.Background(), asynq.NewTask(models.EventBookingCreated, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	svc.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}
