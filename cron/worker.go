package cron

import (
	"context"
	"fmt"
	"time"

	"servicehub/config"
	"servicehub/services/notification"
	"servicehub/services/tasks"
	"servicehub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const maxStartAttempts = 5

// InitNotificationWorker starts the asynq consumer for the notification queue in
// the background and returns the server so the caller can shut it down.
func InitNotificationWorker(svc notification.NotificationService, logger *zap.Logger) *asynq.Server {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	concurrency := config.AppConfig.NotificationConcurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				utils.NotificationQueue: 1,
			},
		},
	)

	mux := NewNotificationMux(svc, logger)

	// Start async worker with retry logic
	go func() {
		logger.Info("Starting notification worker", zap.Int("concurrency", concurrency))
		for attempts := 1; attempts <= maxStartAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("Notification worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("max_attempts", maxStartAttempts),
				zap.Error(err))
			if attempts == maxStartAttempts {
				logger.Error("Notification worker gave up; events stay queued until restart")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// NewNotificationMux routes every domain event type to svc.
func NewNotificationMux(svc notification.NotificationService, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	handler := handleEventTask(svc, logger)
	for _, t := range tasks.EventTypes {
		mux.HandleFunc(t, handler)
	}
	return mux
}

func handleEventTask(svc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		event, err := tasks.ParseEventTask(task)
		if err != nil {
			logger.Error("Dropping malformed event task", zap.String("type", task.Type()), zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := svc.Deliver(ctx, event); err != nil {
			logger.Warn("Notification delivery failed",
				zap.String("type", event.Type),
				zap.String("booking_id", event.BookingID),
				zap.Error(err))
			return err
		}
		return nil
	}
}
