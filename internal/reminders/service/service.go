// Package service implements reminder dispatch: turning eligible workflow
// steps into persisted reminder records and deferred delivery tasks.
package service

import (
	"context"
	"time"

	"bookinghub_backend/internal/reminders/repository"
	"bookinghub_backend/internal/workflows/domain"

	"github.com/google/uuid"
)

// ReminderStore persists reminder records.
type ReminderStore interface {
	Create(ctx context.Context, reminder *repository.Reminder) error
	ListActiveForBooking(ctx context.Context, bookingUID string, method string, seatReferenceUID string) ([]repository.Reminder, error)
	ListActiveForTeam(ctx context.Context, teamID uuid.UUID) ([]repository.Reminder, error)
	MarkCancelled(ctx context.Context, id uuid.UUID) error
	DeleteForTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
}

// TaskScheduler hands reminder deliveries to the deferred task queue and
// cancels them by reference UID.
type TaskScheduler interface {
	ScheduleDelivery(ctx context.Context, reminderID uuid.UUID, referenceUID string, method domain.Method, runAt time.Time) error
	CancelDelivery(ctx context.Context, referenceUID string) error
}

// ScheduleOptions tunes a scheduling pass.
type ScheduleOptions struct {
	// DryRun makes a scheduling pass a no-op.
	DryRun bool
	// SeatReferenceUID ties reminders to one seat of a multi-seat booking.
	SeatReferenceUID string
}

func newReminder(step domain.WorkflowStep, evt domain.CalendarEvent, method domain.Method, recipient, subject, body string, runAt time.Time, opts ScheduleOptions) *repository.Reminder {
	stepID := step.ID
	referenceUID := uuid.NewString()
	reminder := &repository.Reminder{
		ID:             uuid.New(),
		WorkflowStepID: &stepID,
		BookingUID:     evt.BookingUID,
		Method:         string(method),
		Recipient:      recipient,
		Subject:        subject,
		Body:           body,
		ScheduledAt:    runAt,
		Scheduled:      true,
		ReferenceUID:   &referenceUID,
		CreatedAt:      time.Now().UTC(),
	}
	if opts.SeatReferenceUID != "" {
		seat := opts.SeatReferenceUID
		reminder.SeatReferenceUID = &seat
	}
	return reminder
}
