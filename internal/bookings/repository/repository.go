package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookinghub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Booking statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Participant is an organizer or attendee stored on the booking row.
type Participant struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Booking is a scheduled meeting between a host and attendees.
type Booking struct {
	ID               uuid.UUID
	UID              string
	Title            string
	HostUserID       uuid.UUID
	TeamID           *uuid.UUID
	StartTime        time.Time
	EndTime          time.Time
	Status           string
	Location         string
	MeetingURL       string
	AdditionalNotes  string
	RecurringEventID *string
	Organizer        Participant
	Attendees        []Participant
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

const bookingNotFoundMsg = "booking not found"

// Repository provides database operations for bookings.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new bookings repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a booking.
func (r *Repository) Create(ctx context.Context, b *Booking) error {
	organizer, attendees, err := marshalParticipants(b)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO bookings (
			id, uid, title, host_user_id, team_id, start_time, end_time, status,
			location, meeting_url, additional_notes, recurring_event_id,
			organizer, attendees, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		b.ID, b.UID, b.Title, b.HostUserID, b.TeamID, b.StartTime, b.EndTime, b.Status,
		nullString(b.Location), nullString(b.MeetingURL), nullString(b.AdditionalNotes),
		b.RecurringEventID, organizer, attendees, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByUID retrieves a booking by its external uid.
func (r *Repository) GetByUID(ctx context.Context, uid string) (*Booking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, uid, title, host_user_id, team_id, start_time, end_time, status,
			location, meeting_url, additional_notes, recurring_event_id,
			organizer, attendees, created_at, updated_at
		FROM bookings WHERE uid = $1`, uid)

	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(bookingNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// ListForHost retrieves a host's bookings ordered by start time.
func (r *Repository) ListForHost(ctx context.Context, hostUserID uuid.UUID) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, uid, title, host_user_id, team_id, start_time, end_time, status,
			location, meeting_url, additional_notes, recurring_event_id,
			organizer, attendees, created_at, updated_at
		FROM bookings WHERE host_user_id = $1 ORDER BY start_time ASC`, hostUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}

// CountInSeries returns how many bookings already share a recurring event id.
func (r *Repository) CountInSeries(ctx context.Context, recurringEventID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings WHERE recurring_event_id = $1`, recurringEventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count series bookings: %w", err)
	}
	return count, nil
}

// UpdateTimes moves a booking to a new start and end.
func (r *Repository) UpdateTimes(ctx context.Context, uid string, start, end time.Time) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE bookings SET start_time = $2, end_time = $3, updated_at = NOW()
		WHERE uid = $1`, uid, start, end)
	if err != nil {
		return fmt.Errorf("failed to update booking times: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(bookingNotFoundMsg)
	}
	return nil
}

// UpdateStatus sets a booking's status.
func (r *Repository) UpdateStatus(ctx context.Context, uid string, status string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE bookings SET status = $2, updated_at = NOW() WHERE uid = $1`, uid, status)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(bookingNotFoundMsg)
	}
	return nil
}

func marshalParticipants(b *Booking) ([]byte, []byte, error) {
	organizer, err := json.Marshal(b.Organizer)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal organizer: %w", err)
	}
	attendees, err := json.Marshal(b.Attendees)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal attendees: %w", err)
	}
	return organizer, attendees, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*Booking, error) {
	var b Booking
	var location, meetingURL, notes *string
	var organizer, attendees []byte

	if err := row.Scan(
		&b.ID, &b.UID, &b.Title, &b.HostUserID, &b.TeamID, &b.StartTime, &b.EndTime,
		&b.Status, &location, &meetingURL, &notes, &b.RecurringEventID,
		&organizer, &attendees, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Location = derefString(location)
	b.MeetingURL = derefString(meetingURL)
	b.AdditionalNotes = derefString(notes)

	if len(organizer) > 0 {
		if err := json.Unmarshal(organizer, &b.Organizer); err != nil {
			return nil, fmt.Errorf("failed to unmarshal organizer: %w", err)
		}
	}
	if len(attendees) > 0 {
		if err := json.Unmarshal(attendees, &b.Attendees); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attendees: %w", err)
		}
	}

	return &b, nil
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func nullString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
