// Package events defines the domain events exchanged between modules.
package events

import (
	"time"

	platformevents "bookinghub_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event     = platformevents.Event
	BaseEvent = platformevents.BaseEvent
	Handler   = platformevents.Handler
	Bus       = platformevents.Bus
)

// Re-export platform functions
var NewBaseEvent = platformevents.NewBaseEvent

// BookingConfirmed is published when a booking is created in confirmed state
// or an unconfirmed booking is accepted by the host.
type BookingConfirmed struct {
	BaseEvent
	BookingUID    string
	HostUserID    uuid.UUID
	TeamID        *uuid.UUID
	FirstInSeries bool
}

func (e BookingConfirmed) EventName() string { return "bookings.booking.confirmed" }

// BookingRescheduled is published when a booking's start or end time changes.
type BookingRescheduled struct {
	BaseEvent
	BookingUID string
	HostUserID uuid.UUID
	TeamID     *uuid.UUID
	OldStart   time.Time
	NewStart   time.Time
}

func (e BookingRescheduled) EventName() string { return "bookings.booking.rescheduled" }

// BookingCancelled is published when a booking is cancelled.
type BookingCancelled struct {
	BaseEvent
	BookingUID string
	HostUserID uuid.UUID
	TeamID     *uuid.UUID
}

func (e BookingCancelled) EventName() string { return "bookings.booking.cancelled" }

// TeamDeleted is published synchronously while a team is being removed, before
// its workflows are deleted, so pending reminders can still be resolved
// through the workflow tables and cancelled.
type TeamDeleted struct {
	BaseEvent
	TeamID uuid.UUID
}

func (e TeamDeleted) EventName() string { return "teams.team.deleted" }
