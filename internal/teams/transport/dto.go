package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateTeamRequest is the payload for creating a team.
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// AddMemberRequest is the payload for adding a user to a team.
type AddMemberRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

// MemberResponse is the API representation of a team membership.
type MemberResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// TeamResponse is the API representation of a team.
type TeamResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	OwnerUserID uuid.UUID        `json:"ownerUserId"`
	Members     []MemberResponse `json:"members,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// TeamListResponse wraps a list of teams.
type TeamListResponse struct {
	Items []TeamResponse `json:"items"`
	Total int            `json:"total"`
}
