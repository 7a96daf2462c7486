package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"servicehub/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func TestAsynqPublisherEnqueuesTypedTask(t *testing.T) {
	enq := &mockEnqueuer{}
	enq.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		return task.Type() == models.EventBookingCreated
	})).Return(&asynq.TaskInfo{ID: "t1"}, nil)

	p := &AsynqPublisher{client: enq, logger: zaptest.NewLogger(t)}
	p.Publish(context.Background(), models.DomainEvent{Type: models.EventBookingCreated, BookingID: "b1"})

	enq.AssertExpectations(t)
}

func TestAsynqPublisherSurvivesCancelledContext(t *testing.T) {
	enq := &mockEnqueuer{}
	enq.On("EnqueueContext", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(&asynq.TaskInfo{ID: "t1"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &AsynqPublisher{client: enq, logger: zaptest.NewLogger(t)}
	p.Publish(ctx, models.DomainEvent{Type: models.EventBookingCancelled, OccurredAt: time.Now()})

	enq.AssertExpectations(t)
}

func TestAsynqPublisherSwallowsEnqueueErrors(t *testing.T) {
	enq := &mockEnqueuer{}
	enq.On("EnqueueContext", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	p := &AsynqPublisher{client: enq, logger: zaptest.NewLogger(t)}
	assert.NotPanics(t, func() {
		p.Publish(context.Background(), models.DomainEvent{Type: models.EventReviewAdded})
	})
}

func TestRenderKnownEvents(t *testing.T) {
	title, body, err := Render(models.DomainEvent{Type: models.EventBookingConfirmed, BookingID: "b1", TransactionID: "txn"})
	require.NoError(t, err)
	assert.Equal(t, "Booking confirmed", title)
	assert.Contains(t, body, "txn")

	_, body, err = Render(models.DomainEvent{Type: models.EventReviewAdded, ProviderID: "p1", Data: map[string]string{"rating": "5"}})
	require.NoError(t, err)
	assert.Contains(t, body, "5-star")
}

func TestDeliverRejectsUnknownEvent(t *testing.T) {
	svc := NewLogNotificationService(zaptest.NewLogger(t))
	assert.Error(t, svc.Deliver(context.Background(), models.DomainEvent{Type: "weird"}))
	assert.NoError(t, svc.Deliver(context.Background(), models.DomainEvent{Type: models.EventBookingCompleted}))
}
