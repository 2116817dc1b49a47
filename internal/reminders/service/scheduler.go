package service

import (
	"context"

	"bookinghub_backend/internal/workflows/domain"
	"bookinghub_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Scheduler fans workflow steps out to the per-channel dispatchers and
// aggregates their outcomes.
type Scheduler struct {
	email *EmailDispatcher
	sms   *SMSDispatcher
	store ReminderStore
	tasks TaskScheduler
	log   *logger.Logger
}

// NewScheduler creates a new reminder scheduler
func NewScheduler(email *EmailDispatcher, sms *SMSDispatcher, store ReminderStore, tasks TaskScheduler, log *logger.Logger) *Scheduler {
	return &Scheduler{email: email, sms: sms, store: store, tasks: tasks, log: log}
}

// ScheduleAll dispatches every step of every workflow for the event. Steps
// are processed in order; a failing step never stops the pass. A dry run
// dispatches nothing and returns an empty summary.
func (s *Scheduler) ScheduleAll(ctx context.Context, workflows []domain.Workflow, evt domain.CalendarEvent, opts ScheduleOptions) domain.ScheduleSummary {
	var summary domain.ScheduleSummary
	if opts.DryRun {
		return summary
	}

	for _, wf := range workflows {
		for _, step := range wf.Steps {
			summary.Add(s.scheduleStep(ctx, wf, step, evt, opts))
		}
	}

	s.log.Info("reminder scheduling pass complete",
		"bookingUid", evt.BookingUID,
		"scheduled", summary.Scheduled,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)

	return summary
}

func (s *Scheduler) scheduleStep(ctx context.Context, wf domain.Workflow, step domain.WorkflowStep, evt domain.CalendarEvent, opts ScheduleOptions) domain.DispatchResult {
	method, ok := domain.MethodFor(step.Action)
	if !ok {
		return domain.Skipped(wf.ID, step.ID, "unsupported action")
	}

	switch method {
	case domain.MethodEmail:
		return s.email.Schedule(ctx, wf, step, evt, opts)
	case domain.MethodSMS:
		return s.sms.Schedule(ctx, wf, step, evt, opts)
	default:
		return domain.Skipped(wf.ID, step.ID, "unsupported action")
	}
}

// CancelAllForBooking cancels the active reminders of a booking on both
// channels concurrently. An empty seatReferenceUID cancels all seats. Both
// channels are always attempted; errors are joined.
func (s *Scheduler) CancelAllForBooking(ctx context.Context, bookingUID string, seatReferenceUID string) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, method := range []domain.Method{domain.MethodEmail, domain.MethodSMS} {
		method := method
		g.Go(func() error {
			return s.cancelForMethod(gctx, bookingUID, method, seatReferenceUID)
		})
	}

	return g.Wait()
}

func (s *Scheduler) cancelForMethod(ctx context.Context, bookingUID string, method domain.Method, seatReferenceUID string) error {
	reminders, err := s.store.ListActiveForBooking(ctx, bookingUID, string(method), seatReferenceUID)
	if err != nil {
		return err
	}

	var firstErr error
	for _, reminder := range reminders {
		if err := s.cancelOne(ctx, reminder.ID, reminder.ReferenceUID, reminder.BookingUID, string(method)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// CancelForTeam cancels the queued delivery tasks of a team's active
// reminders and then deletes every reminder row owned through the team's
// workflows. Used when a team is deleted; the rows must go before the
// workflow rows do, or the ownership join is lost.
func (s *Scheduler) CancelForTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	reminders, err := s.store.ListActiveForTeam(ctx, teamID)
	if err != nil {
		return 0, err
	}

	var firstErr error
	for _, reminder := range reminders {
		if err := s.cancelOne(ctx, reminder.ID, reminder.ReferenceUID, reminder.BookingUID, reminder.Method); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	deleted, err := s.store.DeleteForTeam(ctx, teamID)
	if err != nil && firstErr == nil {
		firstErr = err
	}
	return int(deleted), firstErr
}

func (s *Scheduler) cancelOne(ctx context.Context, id uuid.UUID, referenceUID *string, bookingUID string, method string) error {
	if referenceUID != nil {
		if err := s.tasks.CancelDelivery(ctx, *referenceUID); err != nil {
			// The queued task may have already run or been dropped; the
			// cancelled flag on the record is what the worker trusts.
			s.log.DeliveryEvent(method, bookingUID, false, "task cancel failed: "+err.Error())
		}
	}
	return s.store.MarkCancelled(ctx, id)
}
