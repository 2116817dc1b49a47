package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookinghub_backend/internal/workflows/domain"
	"bookinghub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const workflowNotFoundMsg = "workflow not found"

// Repository provides database operations for workflows and their steps.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new workflows repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a workflow with its steps in a single transaction.
func (r *Repository) Create(ctx context.Context, wf *domain.Workflow) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin workflow create: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	offsetValue, offsetUnit := offsetColumns(wf.Offset)

	_, err = tx.Exec(ctx, `
		INSERT INTO workflows (
			id, name, owner_user_id, owner_team_id, trigger, time_offset, time_unit, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		wf.ID, wf.Name, wf.OwnerUserID, wf.OwnerTeamID, string(wf.Trigger),
		offsetValue, offsetUnit, wf.CreatedAt, wf.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workflow: %w", err)
	}

	if err := insertSteps(ctx, tx, wf.ID, wf.Steps); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a workflow with its ordered steps.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workflow, error) {
	wf, err := scanWorkflow(r.pool.QueryRow(ctx, `
		SELECT id, name, owner_user_id, owner_team_id, trigger, time_offset, time_unit, created_at, updated_at
		FROM workflows WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(workflowNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}

	steps, err := r.stepsFor(ctx, []uuid.UUID{wf.ID})
	if err != nil {
		return nil, err
	}
	wf.Steps = steps[wf.ID]

	return wf, nil
}

// ListForOwner retrieves all workflows owned by the given user or by the
// given team, steps included, ordered by creation time.
func (r *Repository) ListForOwner(ctx context.Context, userID uuid.UUID, teamID *uuid.UUID) ([]domain.Workflow, error) {
	query := `
		SELECT id, name, owner_user_id, owner_team_id, trigger, time_offset, time_unit, created_at, updated_at
		FROM workflows
		WHERE owner_user_id = $1 OR ($2::uuid IS NOT NULL AND owner_team_id = $2)
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	defer rows.Close()

	return r.collectWithSteps(ctx, rows)
}

// ListByTeam retrieves all workflows owned by a team, steps included.
func (r *Repository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Workflow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, owner_user_id, owner_team_id, trigger, time_offset, time_unit, created_at, updated_at
		FROM workflows WHERE owner_team_id = $1 ORDER BY created_at ASC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team workflows: %w", err)
	}
	defer rows.Close()

	return r.collectWithSteps(ctx, rows)
}

// Update rewrites a workflow's fields and replaces its steps.
func (r *Repository) Update(ctx context.Context, wf *domain.Workflow) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin workflow update: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	offsetValue, offsetUnit := offsetColumns(wf.Offset)

	result, err := tx.Exec(ctx, `
		UPDATE workflows SET
			name = $2,
			trigger = $3,
			time_offset = $4,
			time_unit = $5,
			updated_at = $6
		WHERE id = $1`,
		wf.ID, wf.Name, string(wf.Trigger), offsetValue, offsetUnit, wf.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update workflow: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(workflowNotFoundMsg)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM workflow_steps WHERE workflow_id = $1`, wf.ID); err != nil {
		return fmt.Errorf("failed to replace workflow steps: %w", err)
	}
	if err := insertSteps(ctx, tx, wf.ID, wf.Steps); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes a workflow; steps cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM workflows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workflow: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(workflowNotFoundMsg)
	}
	return nil
}

// DeleteByTeam removes all workflows owned by a team. Returns the number of
// workflows removed.
func (r *Repository) DeleteByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM workflows WHERE owner_team_id = $1`, teamID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete team workflows: %w", err)
	}
	return result.RowsAffected(), nil
}

// CountSteps returns the number of steps configured across a team's workflows.
func (r *Repository) CountSteps(ctx context.Context, teamID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM workflow_steps s
		JOIN workflows w ON w.id = s.workflow_id
		WHERE w.owner_team_id = $1`, teamID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count workflow steps: %w", err)
	}
	return count, nil
}

func (r *Repository) collectWithSteps(ctx context.Context, rows pgx.Rows) ([]domain.Workflow, error) {
	var workflows []domain.Workflow
	var ids []uuid.UUID
	for rows.Next() {
		wf, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}
		workflows = append(workflows, *wf)
		ids = append(ids, wf.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workflows: %w", err)
	}

	steps, err := r.stepsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range workflows {
		workflows[i].Steps = steps[workflows[i].ID]
	}

	return workflows, nil
}

func (r *Repository) stepsFor(ctx context.Context, workflowIDs []uuid.UUID) (map[uuid.UUID][]domain.WorkflowStep, error) {
	result := make(map[uuid.UUID][]domain.WorkflowStep)
	if len(workflowIDs) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, workflow_id, step_number, action, send_to, email_subject, reminder_body, sender,
			number_required, number_verification_pending
		FROM workflow_steps
		WHERE workflow_id = ANY($1)
		ORDER BY workflow_id, step_number ASC`, workflowIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var step domain.WorkflowStep
		var action string
		var sendTo, emailSubject, reminderBody, sender *string
		if err := rows.Scan(
			&step.ID, &step.WorkflowID, &step.StepNumber, &action, &sendTo, &emailSubject,
			&reminderBody, &sender, &step.NumberRequired, &step.NumberVerificationPending,
		); err != nil {
			return nil, fmt.Errorf("failed to scan workflow step: %w", err)
		}
		step.Action = domain.Action(action)
		step.SendTo = derefString(sendTo)
		step.EmailSubject = derefString(emailSubject)
		step.ReminderBody = derefString(reminderBody)
		step.Sender = derefString(sender)
		result[step.WorkflowID] = append(result[step.WorkflowID], step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workflow steps: %w", err)
	}

	return result, nil
}

func insertSteps(ctx context.Context, tx pgx.Tx, workflowID uuid.UUID, steps []domain.WorkflowStep) error {
	for i, step := range steps {
		_, err := tx.Exec(ctx, `
			INSERT INTO workflow_steps (
				id, workflow_id, step_number, action, send_to, email_subject, reminder_body, sender,
				number_required, number_verification_pending
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			step.ID, workflowID, i+1, string(step.Action),
			nullString(step.SendTo), nullString(step.EmailSubject),
			nullString(step.ReminderBody), nullString(step.Sender),
			step.NumberRequired, step.NumberVerificationPending,
		)
		if err != nil {
			return fmt.Errorf("failed to create workflow step: %w", err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkflow(row rowScanner) (*domain.Workflow, error) {
	var wf domain.Workflow
	var trigger string
	var offsetValue *int
	var offsetUnit *string
	var createdAt, updatedAt time.Time

	if err := row.Scan(
		&wf.ID, &wf.Name, &wf.OwnerUserID, &wf.OwnerTeamID, &trigger,
		&offsetValue, &offsetUnit, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	wf.Trigger = domain.Trigger(trigger)
	wf.CreatedAt = createdAt
	wf.UpdatedAt = updatedAt
	if offsetValue != nil && offsetUnit != nil {
		wf.Offset = &domain.Offset{Value: *offsetValue, Unit: domain.TimeUnit(*offsetUnit)}
	}

	return &wf, nil
}

func offsetColumns(offset *domain.Offset) (*int, *string) {
	if offset == nil {
		return nil, nil
	}
	unit := string(offset.Unit)
	return &offset.Value, &unit
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
