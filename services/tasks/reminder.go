package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"nearfix/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// ReminderPayload is the queued reminder for a confirmed appointment. Both
// parties get the nudge when it fires.
type ReminderPayload struct {
	BookingID      string `json:"bookingId"`
	CustomerID     string `json:"customerId"`
	ProviderUserID string `json:"providerUserId"`
	Category       string `json:"category"`
	BookingTime    string `json:"bookingTime"`
	FireDate       string `json:"fireDate"` // RFC 3339
}

// NewReminderTask builds an asynq task scheduled for fireAt.
func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}

// ReminderQueue enqueues appointment reminders 24 hours before the booking
// date. It satisfies the booking service's ReminderScheduler.
type ReminderQueue struct {
	Client *asynq.Client
	Logger *zap.Logger
}

// ScheduleReminder queues a reminder a day before the appointment. Bookings
// already less than a day out are skipped upstream.
func (q *ReminderQueue) ScheduleReminder(b *models.Booking, providerUserID string) error {
	if q.Client == nil {
		return fmt.Errorf("reminder queue has no asynq client")
	}
	fireAt := b.BookingDate.Add(-24 * time.Hour)
	payload := ReminderPayload{
		BookingID:      b.ID,
		CustomerID:     b.CustomerID,
		ProviderUserID: providerUserID,
		Category:       b.Service.Category,
		BookingTime:    b.BookingTime,
		FireDate:       fireAt.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := q.Client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	q.Logger.Info("reminder scheduled",
		zap.String("bookingId", b.ID), zap.Time("fireAt", fireAt))
	return nil
}
