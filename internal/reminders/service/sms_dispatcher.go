package service

import (
	"context"
	"time"

	"bookinghub_backend/internal/workflows/domain"
	"bookinghub_backend/internal/workflows/templates"
	"bookinghub_backend/platform/config"
	"bookinghub_backend/platform/logger"
	"bookinghub_backend/platform/phone"
)

// SMSDispatcher schedules SMS reminders for workflow steps. Credentials are
// looked up per call so a missing SMS setup fails individual dispatches
// instead of startup.
type SMSDispatcher struct {
	store  ReminderStore
	tasks  TaskScheduler
	smsCfg config.SMSConfig
	log    *logger.Logger
}

// NewSMSDispatcher creates a new SMS dispatcher
func NewSMSDispatcher(store ReminderStore, tasks TaskScheduler, smsCfg config.SMSConfig, log *logger.Logger) *SMSDispatcher {
	return &SMSDispatcher{store: store, tasks: tasks, smsCfg: smsCfg, log: log}
}

// Schedule dispatches a single SMS step for the given event. Failures are
// folded into the result, never returned.
func (d *SMSDispatcher) Schedule(ctx context.Context, wf domain.Workflow, step domain.WorkflowStep, evt domain.CalendarEvent, opts ScheduleOptions) domain.DispatchResult {
	if !step.Action.IsSMS() {
		return domain.Skipped(wf.ID, step.ID, "not an sms step")
	}

	if step.NumberVerificationPending {
		return domain.Failed(wf.ID, step.ID, "phone number not verified")
	}

	recipient := smsRecipient(step, evt)
	if recipient == "" {
		return domain.Failed(wf.ID, step.ID, "no phone number")
	}

	if _, ok := d.smsCfg.LookupSMSCredentials(); !ok {
		return domain.Failed(wf.ID, step.ID, "sms delivery not configured")
	}

	vars := templates.FromEvent(evt)
	body := templates.RenderSMS(wf.Trigger, evt.Locale(), vars, step.ReminderBody)

	runAt, ok := domain.ScheduledAt(time.Now().UTC(), wf.Trigger, wf.Offset, evt.StartTime, evt.EndTime)
	if !ok {
		return domain.Failed(wf.ID, step.ID, "cannot determine send time")
	}

	reminder := newReminder(step, evt, domain.MethodSMS, recipient, "", body, runAt, opts)
	if err := d.store.Create(ctx, reminder); err != nil {
		d.log.DispatchError(wf.ID.String(), step.ID.String(), evt.BookingUID, err)
		return domain.Failed(wf.ID, step.ID, "failed to store reminder")
	}

	if err := d.tasks.ScheduleDelivery(ctx, reminder.ID, *reminder.ReferenceUID, domain.MethodSMS, runAt); err != nil {
		d.log.DispatchError(wf.ID.String(), step.ID.String(), evt.BookingUID, err)
		if cancelErr := d.store.MarkCancelled(ctx, reminder.ID); cancelErr != nil {
			d.log.DispatchError(wf.ID.String(), step.ID.String(), evt.BookingUID, cancelErr)
		}
		return domain.Failed(wf.ID, step.ID, "failed to enqueue delivery")
	}

	return domain.Scheduled(wf.ID, step.ID, reminder.ID)
}

func smsRecipient(step domain.WorkflowStep, evt domain.CalendarEvent) string {
	switch step.Action {
	case domain.ActionSMSAttendee:
		if step.SendTo != "" {
			return phone.NormalizeE164(step.SendTo)
		}
		if att, ok := evt.FirstAttendee(); ok && att.Phone != "" {
			return phone.NormalizeE164(att.Phone)
		}
		return ""
	case domain.ActionSMSNumber:
		if step.SendTo == "" {
			return ""
		}
		return phone.NormalizeE164(step.SendTo)
	default:
		return ""
	}
}
