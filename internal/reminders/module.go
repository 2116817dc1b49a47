// Package reminders provides the reminder scheduling module. It subscribes
// to booking lifecycle events and turns matching workflows into persisted
// reminders with deferred delivery tasks; domain modules never talk to the
// task queue directly.
package reminders

import (
	"context"

	"bookinghub_backend/internal/events"
	"bookinghub_backend/internal/reminders/repository"
	"bookinghub_backend/internal/reminders/service"
	"bookinghub_backend/internal/workflows/domain"
	workflowservice "bookinghub_backend/internal/workflows/service"
	"bookinghub_backend/platform/config"
	"bookinghub_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkflowSource lists the workflows that apply to a booking's host and team.
type WorkflowSource interface {
	ListForBooking(ctx context.Context, hostUserID uuid.UUID, teamID *uuid.UUID) ([]domain.Workflow, error)
}

// BookingSnapshotter loads the calendar event snapshot for a booking.
type BookingSnapshotter interface {
	Snapshot(ctx context.Context, bookingUID string) (domain.CalendarEvent, error)
}

// Module represents the reminders module
type Module struct {
	Scheduler *service.Scheduler
	Store     *repository.Repository

	workflows WorkflowSource
	bookings  BookingSnapshotter
	log       *logger.Logger
}

// NewModule creates a new reminders module with all dependencies wired
func NewModule(pool *pgxpool.Pool, tasks service.TaskScheduler, smsCfg config.SMSConfig, workflows WorkflowSource, bookings BookingSnapshotter, log *logger.Logger) *Module {
	store := repository.New(pool)
	email := service.NewEmailDispatcher(store, tasks, log)
	sms := service.NewSMSDispatcher(store, tasks, smsCfg, log)
	sched := service.NewScheduler(email, sms, store, tasks, log)

	return &Module{
		Scheduler: sched,
		Store:     store,
		workflows: workflows,
		bookings:  bookings,
		log:       log,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "reminders"
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.BookingConfirmed{}.EventName(), m)
	bus.Subscribe(events.BookingRescheduled{}.EventName(), m)
	bus.Subscribe(events.BookingCancelled{}.EventName(), m)
	bus.Subscribe(events.TeamDeleted{}.EventName(), m)
}

// Handle processes domain events.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.BookingConfirmed:
		return m.handleConfirmed(ctx, e)
	case events.BookingRescheduled:
		return m.handleRescheduled(ctx, e)
	case events.BookingCancelled:
		return m.handleCancelled(ctx, e)
	case events.TeamDeleted:
		return m.handleTeamDeleted(ctx, e)
	}
	return nil
}

func (m *Module) handleConfirmed(ctx context.Context, e events.BookingConfirmed) error {
	change := workflowservice.BookingChange{
		Kind:          workflowservice.ChangeCreated,
		Confirmed:     true,
		FirstInSeries: e.FirstInSeries,
	}
	return m.scheduleFor(ctx, e.BookingUID, e.HostUserID, e.TeamID, change)
}

func (m *Module) handleRescheduled(ctx context.Context, e events.BookingRescheduled) error {
	if err := m.Scheduler.CancelAllForBooking(ctx, e.BookingUID, ""); err != nil {
		m.log.DispatchError("", "", e.BookingUID, err)
	}

	change := workflowservice.BookingChange{Kind: workflowservice.ChangeRescheduled}
	return m.scheduleFor(ctx, e.BookingUID, e.HostUserID, e.TeamID, change)
}

func (m *Module) handleCancelled(ctx context.Context, e events.BookingCancelled) error {
	if err := m.Scheduler.CancelAllForBooking(ctx, e.BookingUID, ""); err != nil {
		m.log.DispatchError("", "", e.BookingUID, err)
	}

	change := workflowservice.BookingChange{Kind: workflowservice.ChangeCancelled}
	return m.scheduleFor(ctx, e.BookingUID, e.HostUserID, e.TeamID, change)
}

func (m *Module) handleTeamDeleted(ctx context.Context, e events.TeamDeleted) error {
	removed, err := m.Scheduler.CancelForTeam(ctx, e.TeamID)
	if err != nil {
		return err
	}
	m.log.Info("removed reminders for deleted team", "teamId", e.TeamID, "count", removed)
	return nil
}

func (m *Module) scheduleFor(ctx context.Context, bookingUID string, hostUserID uuid.UUID, teamID *uuid.UUID, change workflowservice.BookingChange) error {
	all, err := m.workflows.ListForBooking(ctx, hostUserID, teamID)
	if err != nil {
		return err
	}

	eligible := workflowservice.EligibleWorkflows(all, change)
	if len(eligible) == 0 {
		return nil
	}

	evt, err := m.bookings.Snapshot(ctx, bookingUID)
	if err != nil {
		return err
	}

	m.Scheduler.ScheduleAll(ctx, eligible, evt, service.ScheduleOptions{})
	return nil
}
