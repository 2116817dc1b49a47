package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookinghub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Reminder is a persisted record of a scheduled workflow notification. The
// rendered recipient, subject and body are stored at schedule time so delivery
// needs no further lookups.
type Reminder struct {
	ID               uuid.UUID
	WorkflowStepID   *uuid.UUID
	BookingUID       string
	Method           string
	Recipient        string
	Subject          string
	Body             string
	ScheduledAt      time.Time
	Scheduled        bool
	Cancelled        bool
	ReferenceUID     *string
	SeatReferenceUID *string
	CreatedAt        time.Time
}

const reminderColumns = `
	id, workflow_step_id, booking_uid, method, recipient, subject, body,
	scheduled_at, scheduled, cancelled, reference_uid, seat_reference_uid, created_at`

// Repository provides database operations for reminders.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new reminders repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a reminder record.
func (r *Repository) Create(ctx context.Context, reminder *Reminder) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		reminder.ID, reminder.WorkflowStepID, reminder.BookingUID, reminder.Method,
		reminder.Recipient, reminder.Subject, reminder.Body, reminder.ScheduledAt,
		reminder.Scheduled, reminder.Cancelled, reminder.ReferenceUID,
		reminder.SeatReferenceUID, reminder.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// GetByID retrieves a reminder by its id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Reminder, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = $1`, id)
	reminder, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("reminder not found")
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return reminder, nil
}

// ListActiveForBooking retrieves the not yet cancelled reminders for a booking
// and delivery method. An empty seatReferenceUID matches all seats; otherwise
// only reminders for that seat are returned.
func (r *Repository) ListActiveForBooking(ctx context.Context, bookingUID string, method string, seatReferenceUID string) ([]Reminder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE booking_uid = $1
			AND method = $2
			AND scheduled = TRUE
			AND cancelled = FALSE
			AND ($3 = '' OR seat_reference_uid = $3)
		ORDER BY scheduled_at ASC`, bookingUID, method, seatReferenceUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	return collectReminders(rows)
}

// ListActiveForTeam retrieves the not yet cancelled reminders belonging to a
// team's workflow steps.
func (r *Repository) ListActiveForTeam(ctx context.Context, teamID uuid.UUID) ([]Reminder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+prefixColumns("r")+`
		FROM reminders r
		JOIN workflow_steps s ON s.id = r.workflow_step_id
		JOIN workflows w ON w.id = s.workflow_id
		WHERE w.owner_team_id = $1
			AND r.scheduled = TRUE
			AND r.cancelled = FALSE`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team reminders: %w", err)
	}
	defer rows.Close()

	return collectReminders(rows)
}

// MarkCancelled flags a reminder as cancelled. Already cancelled reminders
// are left untouched.
func (r *Repository) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reminders SET cancelled = TRUE WHERE id = $1 AND cancelled = FALSE`, id)
	if err != nil {
		return fmt.Errorf("failed to cancel reminder: %w", err)
	}
	return nil
}

// DeleteForTeam removes every reminder belonging to a team's workflow steps,
// active or not, and returns the number of rows removed. Must run before the
// team's workflows are deleted or the ownership join no longer resolves.
func (r *Repository) DeleteForTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM reminders
		WHERE workflow_step_id IN (
			SELECT s.id
			FROM workflow_steps s
			JOIN workflows w ON w.id = s.workflow_id
			WHERE w.owner_team_id = $1
		)`, teamID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete team reminders: %w", err)
	}
	return tag.RowsAffected(), nil
}

func collectReminders(rows pgx.Rows) ([]Reminder, error) {
	var reminders []Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, *reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}
	return reminders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row rowScanner) (*Reminder, error) {
	var reminder Reminder
	if err := row.Scan(
		&reminder.ID, &reminder.WorkflowStepID, &reminder.BookingUID, &reminder.Method,
		&reminder.Recipient, &reminder.Subject, &reminder.Body, &reminder.ScheduledAt,
		&reminder.Scheduled, &reminder.Cancelled, &reminder.ReferenceUID,
		&reminder.SeatReferenceUID, &reminder.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func prefixColumns(alias string) string {
	return alias + `.id, ` + alias + `.workflow_step_id, ` + alias + `.booking_uid, ` +
		alias + `.method, ` + alias + `.recipient, ` + alias + `.subject, ` + alias + `.body, ` +
		alias + `.scheduled_at, ` + alias + `.scheduled, ` + alias + `.cancelled, ` +
		alias + `.reference_uid, ` + alias + `.seat_reference_uid, ` + alias + `.created_at`
}
