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

// Team is a group of users sharing workflows.
type Team struct {
	ID          uuid.UUID
	Name        string
	OwnerUserID uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Member is a user's membership in a team.
type Member struct {
	TeamID    uuid.UUID
	UserID    uuid.UUID
	Role      string
	CreatedAt time.Time
}

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Repository provides database operations for teams.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new teams repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a team and its owner membership in one transaction.
func (r *Repository) Create(ctx context.Context, team *Team) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin team create: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO teams (id, name, owner_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		team.ID, team.Name, team.OwnerUserID, team.CreatedAt, team.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)`,
		team.ID, team.OwnerUserID, RoleOwner, team.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create owner membership: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a team by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	var team Team
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, owner_user_id, created_at, updated_at
		FROM teams WHERE id = $1`, id).Scan(
		&team.ID, &team.Name, &team.OwnerUserID, &team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("team not found")
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

// ListForUser retrieves the teams a user belongs to.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]Team, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.name, t.owner_user_id, t.created_at, t.updated_at
		FROM teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = $1
		ORDER BY t.created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.ID, &team.Name, &team.OwnerUserID, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}
	return teams, nil
}

// IsMember reports whether a user belongs to a team.
func (r *Repository) IsMember(ctx context.Context, teamID uuid.UUID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`,
		teamID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// AddMember inserts a membership. Adding an existing member is a conflict.
func (r *Repository) AddMember(ctx context.Context, member *Member) error {
	result, err := r.pool.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (team_id, user_id) DO NOTHING`,
		member.TeamID, member.UserID, member.Role, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.Conflict("user is already a member")
	}
	return nil
}

// RemoveMember deletes a membership.
func (r *Repository) RemoveMember(ctx context.Context, teamID uuid.UUID, userID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("membership not found")
	}
	return nil
}

// ListMembers retrieves a team's memberships.
func (r *Repository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT team_id, user_id, role, created_at
		FROM team_members WHERE team_id = $1 ORDER BY created_at ASC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var member Member
		if err := rows.Scan(&member.TeamID, &member.UserID, &member.Role, &member.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// CountMembers returns the number of users in a team.
func (r *Repository) CountMembers(ctx context.Context, teamID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM team_members WHERE team_id = $1`, teamID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// Delete removes a team; memberships cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("team not found")
	}
	return nil
}
