package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tablevoice/config"
	"tablevoice/models"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// reminderLeadTime is how far ahead of the reservation the guest is pinged.
const reminderLeadTime = 3 * time.Hour

// ReminderScheduler enqueues reminder tasks for committed bookings.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderDB,
		}),
	}
}

// Schedule queues a reminder ahead of the booking's date and time. Bookings
// whose reminder moment is already past are skipped, not errors.
func (s *ReminderScheduler) Schedule(ctx context.Context, record models.BookingRecord) error {
	fireAt, err := reminderTime(record.Date, record.Time)
	if err != nil {
		return fmt.Errorf("reminder: unusable booking date/time: %w", err)
	}
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: record.ID,
		Name:      record.Name,
		Date:      record.Date,
		Time:      record.Time,
		Guests:    record.Guests,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeReminderSend, b)
	_, err = s.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt))
	return err
}

// reminderTime computes the reminder moment from the booking's "YYYY-MM-DD"
// date and "HH:MM" time, falling back to noon when the time is free-form.
func reminderTime(date, timeOfDay string) (time.Time, error) {
	at, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, time.Local)
	if err != nil {
		at, err = time.ParseInLocation("2006-01-02 15:04", date+" 12:00", time.Local)
		if err != nil {
			return time.Time{}, err
		}
	}
	return at.Add(-reminderLeadTime), nil
}
