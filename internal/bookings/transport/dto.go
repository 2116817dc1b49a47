package transport

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantInput is an organizer or attendee in a booking request.
type ParticipantInput struct {
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// CreateBookingRequest is the payload for creating a booking.
type CreateBookingRequest struct {
	Title            string             `json:"title" binding:"required,max=200"`
	TeamID           *uuid.UUID         `json:"teamId,omitempty"`
	StartTime        time.Time          `json:"startTime" binding:"required"`
	EndTime          time.Time          `json:"endTime" binding:"required"`
	Location         string             `json:"location,omitempty"`
	MeetingURL       string             `json:"meetingUrl,omitempty"`
	AdditionalNotes  string             `json:"additionalNotes,omitempty"`
	RecurringEventID *string            `json:"recurringEventId,omitempty"`
	Organizer        ParticipantInput   `json:"organizer" binding:"required"`
	Attendees        []ParticipantInput `json:"attendees" binding:"required,min=1,dive"`
	// RequiresConfirmation holds the booking in pending state until the host
	// confirms it; no reminders fire before that.
	RequiresConfirmation bool `json:"requiresConfirmation"`
}

// RescheduleBookingRequest moves a booking to a new time.
type RescheduleBookingRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

// ParticipantResponse mirrors ParticipantInput in responses.
type ParticipantResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// BookingResponse is the API representation of a booking.
type BookingResponse struct {
	ID               uuid.UUID             `json:"id"`
	UID              string                `json:"uid"`
	Title            string                `json:"title"`
	HostUserID       uuid.UUID             `json:"hostUserId"`
	TeamID           *uuid.UUID            `json:"teamId,omitempty"`
	StartTime        time.Time             `json:"startTime"`
	EndTime          time.Time             `json:"endTime"`
	Status           string                `json:"status"`
	Location         string                `json:"location,omitempty"`
	MeetingURL       string                `json:"meetingUrl,omitempty"`
	AdditionalNotes  string                `json:"additionalNotes,omitempty"`
	RecurringEventID *string               `json:"recurringEventId,omitempty"`
	Organizer        ParticipantResponse   `json:"organizer"`
	Attendees        []ParticipantResponse `json:"attendees"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// BookingListResponse wraps a list of bookings.
type BookingListResponse struct {
	Items []BookingResponse `json:"items"`
	Total int               `json:"total"`
}
