package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookinghub_backend/internal/bookings/repository"
	"bookinghub_backend/internal/bookings/transport"
	"bookinghub_backend/internal/events"
	"bookinghub_backend/internal/workflows/domain"
	"bookinghub_backend/platform/apperr"
	"bookinghub_backend/platform/config"
	"bookinghub_backend/platform/logger"

	"github.com/google/uuid"
)

const errEndTimeAfterStart = "endTime must be after startTime"

// Service provides business logic for bookings. Reminder scheduling hangs off
// the published events; a reminder failure can never fail a booking operation.
type Service struct {
	repo     *repository.Repository
	eventBus events.Bus
	notifCfg config.NotificationConfig
	log      *logger.Logger
}

// New creates a new bookings service
func New(repo *repository.Repository, eventBus events.Bus, notifCfg config.NotificationConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, notifCfg: notifCfg, log: log}
}

// Create creates a booking for the requesting host. Confirmed bookings
// publish BookingConfirmed immediately; pending ones stay silent until the
// host confirms.
func (s *Service) Create(ctx context.Context, hostUserID uuid.UUID, req transport.CreateBookingRequest) (*transport.BookingResponse, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, apperr.BadRequest(errEndTimeAfterStart)
	}

	firstInSeries := true
	if req.RecurringEventID != nil {
		existing, err := s.repo.CountInSeries(ctx, *req.RecurringEventID)
		if err != nil {
			return nil, err
		}
		firstInSeries = existing == 0
	}

	status := repository.StatusConfirmed
	if req.RequiresConfirmation {
		status = repository.StatusPending
	}

	now := time.Now().UTC()
	booking := &repository.Booking{
		ID:               uuid.New(),
		UID:              newBookingUID(),
		Title:            req.Title,
		HostUserID:       hostUserID,
		TeamID:           req.TeamID,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Status:           status,
		Location:         req.Location,
		MeetingURL:       req.MeetingURL,
		AdditionalNotes:  req.AdditionalNotes,
		RecurringEventID: req.RecurringEventID,
		Organizer:        toParticipant(req.Organizer),
		Attendees:        toParticipants(req.Attendees),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if status == repository.StatusConfirmed {
		s.publishConfirmed(ctx, booking, firstInSeries)
	}

	resp := toResponse(booking)
	return &resp, nil
}

// Confirm moves a pending booking to confirmed and publishes BookingConfirmed.
func (s *Service) Confirm(ctx context.Context, uid string, hostUserID uuid.UUID) (*transport.BookingResponse, error) {
	booking, err := s.ensureHost(ctx, uid, hostUserID)
	if err != nil {
		return nil, err
	}
	if booking.Status == repository.StatusCancelled {
		return nil, apperr.Conflict("cannot confirm a cancelled booking")
	}
	if booking.Status == repository.StatusConfirmed {
		resp := toResponse(booking)
		return &resp, nil
	}

	if err := s.repo.UpdateStatus(ctx, uid, repository.StatusConfirmed); err != nil {
		return nil, err
	}
	booking.Status = repository.StatusConfirmed

	s.publishConfirmed(ctx, booking, s.isFirstInSeries(ctx, booking))

	resp := toResponse(booking)
	return &resp, nil
}

// Reschedule moves a booking and publishes BookingRescheduled so existing
// reminders are replaced.
func (s *Service) Reschedule(ctx context.Context, uid string, hostUserID uuid.UUID, req transport.RescheduleBookingRequest) (*transport.BookingResponse, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, apperr.BadRequest(errEndTimeAfterStart)
	}

	booking, err := s.ensureHost(ctx, uid, hostUserID)
	if err != nil {
		return nil, err
	}
	if booking.Status == repository.StatusCancelled {
		return nil, apperr.Conflict("cannot reschedule a cancelled booking")
	}

	oldStart := booking.StartTime
	if err := s.repo.UpdateTimes(ctx, uid, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	booking.StartTime = req.StartTime
	booking.EndTime = req.EndTime

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.BookingRescheduled{
			BaseEvent:  events.NewBaseEvent(),
			BookingUID: booking.UID,
			HostUserID: booking.HostUserID,
			TeamID:     booking.TeamID,
			OldStart:   oldStart,
			NewStart:   req.StartTime,
		})
	}

	resp := toResponse(booking)
	return &resp, nil
}

// Cancel cancels a booking and publishes BookingCancelled so pending
// reminders are dropped and cancellation workflows fire.
func (s *Service) Cancel(ctx context.Context, uid string, hostUserID uuid.UUID) error {
	booking, err := s.ensureHost(ctx, uid, hostUserID)
	if err != nil {
		return err
	}
	if booking.Status == repository.StatusCancelled {
		return nil
	}

	if err := s.repo.UpdateStatus(ctx, uid, repository.StatusCancelled); err != nil {
		return err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.BookingCancelled{
			BaseEvent:  events.NewBaseEvent(),
			BookingUID: booking.UID,
			HostUserID: booking.HostUserID,
			TeamID:     booking.TeamID,
		})
	}

	return nil
}

// GetByUID retrieves a booking for its host.
func (s *Service) GetByUID(ctx context.Context, uid string, hostUserID uuid.UUID) (*transport.BookingResponse, error) {
	booking, err := s.ensureHost(ctx, uid, hostUserID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(booking)
	return &resp, nil
}

// List retrieves the host's bookings.
func (s *Service) List(ctx context.Context, hostUserID uuid.UUID) (*transport.BookingListResponse, error) {
	bookings, err := s.repo.ListForHost(ctx, hostUserID)
	if err != nil {
		return nil, err
	}

	items := make([]transport.BookingResponse, len(bookings))
	for i := range bookings {
		items[i] = toResponse(&bookings[i])
	}
	return &transport.BookingListResponse{Items: items, Total: len(items)}, nil
}

// Snapshot builds the immutable calendar event view handed to the reminder
// subsystem.
func (s *Service) Snapshot(ctx context.Context, uid string) (domain.CalendarEvent, error) {
	booking, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return domain.CalendarEvent{}, err
	}

	evt := domain.CalendarEvent{
		BookingUID:      booking.UID,
		Title:           booking.Title,
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
		Organizer:       toPerson(booking.Organizer),
		Location:        booking.Location,
		AdditionalNotes: booking.AdditionalNotes,
		MeetingURL:      booking.MeetingURL,
	}
	for _, attendee := range booking.Attendees {
		evt.Attendees = append(evt.Attendees, toPerson(attendee))
	}

	if base := strings.TrimRight(s.notifCfg.GetAppBaseURL(), "/"); base != "" {
		evt.CancelURL = fmt.Sprintf("%s/booking/%s?cancel=true", base, booking.UID)
		evt.RescheduleURL = fmt.Sprintf("%s/reschedule/%s", base, booking.UID)
	}

	return evt, nil
}

func (s *Service) publishConfirmed(ctx context.Context, booking *repository.Booking, firstInSeries bool) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, events.BookingConfirmed{
		BaseEvent:     events.NewBaseEvent(),
		BookingUID:    booking.UID,
		HostUserID:    booking.HostUserID,
		TeamID:        booking.TeamID,
		FirstInSeries: firstInSeries,
	})
}

// isFirstInSeries is used on late confirmation, where the booking row already
// counts toward its own series.
func (s *Service) isFirstInSeries(ctx context.Context, booking *repository.Booking) bool {
	if booking.RecurringEventID == nil {
		return true
	}
	count, err := s.repo.CountInSeries(ctx, *booking.RecurringEventID)
	if err != nil {
		s.log.DatabaseError("count series bookings", err)
		return false
	}
	return count <= 1
}

func (s *Service) ensureHost(ctx context.Context, uid string, hostUserID uuid.UUID) (*repository.Booking, error) {
	booking, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if booking.HostUserID != hostUserID {
		return nil, apperr.Forbidden("not authorized to access this booking")
	}
	return booking, nil
}

func newBookingUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:22]
}

func toParticipant(input transport.ParticipantInput) repository.Participant {
	return repository.Participant{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Locale:   input.Locale,
		Timezone: input.Timezone,
	}
}

func toParticipants(inputs []transport.ParticipantInput) []repository.Participant {
	out := make([]repository.Participant, len(inputs))
	for i, input := range inputs {
		out[i] = toParticipant(input)
	}
	return out
}

func toPerson(p repository.Participant) domain.Person {
	return domain.Person{
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		Locale:   p.Locale,
		Timezone: p.Timezone,
	}
}

func toResponse(b *repository.Booking) transport.BookingResponse {
	resp := transport.BookingResponse{
		ID:               b.ID,
		UID:              b.UID,
		Title:            b.Title,
		HostUserID:       b.HostUserID,
		TeamID:           b.TeamID,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Status:           b.Status,
		Location:         b.Location,
		MeetingURL:       b.MeetingURL,
		AdditionalNotes:  b.AdditionalNotes,
		RecurringEventID: b.RecurringEventID,
		Organizer:        toParticipantResponse(b.Organizer),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
	for _, attendee := range b.Attendees {
		resp.Attendees = append(resp.Attendees, toParticipantResponse(attendee))
	}
	return resp
}

func toParticipantResponse(p repository.Participant) transport.ParticipantResponse {
	return transport.ParticipantResponse{
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		Locale:   p.Locale,
		Timezone: p.Timezone,
	}
}
