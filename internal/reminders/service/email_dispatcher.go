package service

import (
	"context"
	"time"

	"bookinghub_backend/internal/workflows/domain"
	"bookinghub_backend/internal/workflows/templates"
	"bookinghub_backend/platform/logger"
)

// EmailDispatcher schedules email reminders for workflow steps.
type EmailDispatcher struct {
	store ReminderStore
	tasks TaskScheduler
	log   *logger.Logger
}

// NewEmailDispatcher creates a new email dispatcher
func NewEmailDispatcher(store ReminderStore, tasks TaskScheduler, log *logger.Logger) *EmailDispatcher {
	return &EmailDispatcher{store: store, tasks: tasks, log: log}
}

// Schedule dispatches a single email step for the given event. It never
// returns an error: every failure is folded into the result so one broken
// step cannot abort a scheduling pass.
func (d *EmailDispatcher) Schedule(ctx context.Context, wf domain.Workflow, step domain.WorkflowStep, evt domain.CalendarEvent, opts ScheduleOptions) domain.DispatchResult {
	if !step.Action.IsEmail() {
		return domain.Skipped(wf.ID, step.ID, "not an email step")
	}

	recipient := emailRecipient(step, evt)
	if recipient == "" {
		return domain.Failed(wf.ID, step.ID, "no email recipient")
	}

	vars := templates.FromEvent(evt)
	subject, body := templates.RenderEmail(wf.Trigger, evt.Locale(), vars, step.EmailSubject, step.ReminderBody)

	runAt, ok := domain.ScheduledAt(time.Now().UTC(), wf.Trigger, wf.Offset, evt.StartTime, evt.EndTime)
	if !ok {
		return domain.Failed(wf.ID, step.ID, "cannot determine send time")
	}

	reminder := newReminder(step, evt, domain.MethodEmail, recipient, subject, body, runAt, opts)
	if err := d.store.Create(ctx, reminder); err != nil {
		d.log.DispatchError(wf.ID.String(), step.ID.String(), evt.BookingUID, err)
		return domain.Failed(wf.ID, step.ID, "failed to store reminder")
	}

	if err := d.tasks.ScheduleDelivery(ctx, reminder.ID, *reminder.ReferenceUID, domain.MethodEmail, runAt); err != nil {
		d.log.DispatchError(wf.ID.String(), step.ID.String(), evt.BookingUID, err)
		if cancelErr := d.store.MarkCancelled(ctx, reminder.ID); cancelErr != nil {
			d.log.DispatchError(wf.ID.String(), step.ID.String(), evt.BookingUID, cancelErr)
		}
		return domain.Failed(wf.ID, step.ID, "failed to enqueue delivery")
	}

	return domain.Scheduled(wf.ID, step.ID, reminder.ID)
}

func emailRecipient(step domain.WorkflowStep, evt domain.CalendarEvent) string {
	switch step.Action {
	case domain.ActionEmailHost:
		return evt.Organizer.Email
	case domain.ActionEmailAttendee:
		if step.SendTo != "" {
			return step.SendTo
		}
		if att, ok := evt.FirstAttendee(); ok {
			return att.Email
		}
		return ""
	case domain.ActionEmailAddress:
		return step.SendTo
	default:
		return ""
	}
}
