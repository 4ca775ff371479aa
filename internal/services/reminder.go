package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"fedha/internal/amqp"
	"fedha/internal/storage"
)

// ReminderPublisher is the transport side of the reminder pipeline.
type ReminderPublisher interface {
	PublishBillReminder(ctx context.Context, msg *amqp.BillReminderMessage) error
}

// ReminderService scans for due reminder-active bills, publishes one
// message per bill, and pushes the due date past today. Delivery is at
// least once; the worker on the other side of the queue sends the mail.
type ReminderService struct {
	store     storage.ReminderStore
	publisher ReminderPublisher
}

func NewReminderService(store storage.ReminderStore, publisher ReminderPublisher) *ReminderService {
	return &ReminderService{store: store, publisher: publisher}
}

// Run performs one reminder sweep and returns how many bills it
// published. A bill whose publish fails keeps its due date, so the next
// sweep retries it.
func (s *ReminderService) Run(ctx context.Context, now time.Time) (int, error) {
	due, err := s.store.DueReminders(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list due reminders: %w", err)
	}

	slog.InfoContext(ctx, "Reminder sweep started",
		"due", len(due),
		"as_of", now.Format("2006-01-02"))

	published := 0
	for _, d := range due {
		msg := &amqp.BillReminderMessage{
			BillID:    d.Bill.ID,
			OwnerID:   d.Bill.OwnerID,
			Username:  d.Username,
			Email:     d.Email,
			Title:     d.Bill.Title,
			Amount:    d.Bill.Amount.String(),
			Category:  string(d.Bill.Category),
			DueDate:   d.Bill.NextDueDate.Format("2006-01-02"),
			Timestamp: now,
		}
		if err := s.publisher.PublishBillReminder(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Failed to publish reminder",
				"bill_id", d.Bill.ID,
				"error", err)
			continue
		}

		next := NextDueDateAfter(d.Bill.NextDueDate, d.Bill.Frequency, now)
		if err := s.store.AdvanceBill(ctx, d.Bill.ID, next); err != nil {
			slog.ErrorContext(ctx, "Failed to advance bill due date",
				"bill_id", d.Bill.ID,
				"error", err)
			continue
		}
		published++
	}

	slog.InfoContext(ctx, "Reminder sweep complete",
		"published", published,
		"checked", len(due))
	return published, nil
}

// Schedule registers the sweep on a cron spec and returns the started
// scheduler. Stop it during shutdown.
func (s *ReminderService) Schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := s.Run(ctx, time.Now().UTC()); err != nil {
			slog.ErrorContext(ctx, "Reminder sweep failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule reminder sweep: %w", err)
	}
	c.Start()
	slog.InfoContext(ctx, "Reminder scheduler started", "spec", spec)
	return c, nil
}
