package service

import (
	"context"
	"time"

	"bookinghub_backend/internal/events"
	"bookinghub_backend/internal/teams/repository"
	"bookinghub_backend/internal/teams/transport"
	"bookinghub_backend/platform/apperr"
	"bookinghub_backend/platform/logger"

	"github.com/google/uuid"
)

// WorkflowCleaner removes a team's workflows when the team is deleted.
type WorkflowCleaner interface {
	DeleteByTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
}

// Service provides business logic for teams
type Service struct {
	repo      *repository.Repository
	workflows WorkflowCleaner
	eventBus  events.Bus
	log       *logger.Logger
}

// New creates a new teams service
func New(repo *repository.Repository, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, log: log}
}

// SetWorkflowCleaner wires the workflow cleanup dependency after construction.
// The workflows module depends on this service for membership checks, so the
// cleaner cannot be passed to New without a cycle.
func (s *Service) SetWorkflowCleaner(workflows WorkflowCleaner) {
	s.workflows = workflows
}

// IsMember reports whether a user belongs to a team.
func (s *Service) IsMember(ctx context.Context, teamID uuid.UUID, userID uuid.UUID) (bool, error) {
	return s.repo.IsMember(ctx, teamID, userID)
}

// Create creates a team owned by the requesting user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req transport.CreateTeamRequest) (*transport.TeamResponse, error) {
	now := time.Now().UTC()
	team := &repository.Team{
		ID:          uuid.New(),
		Name:        req.Name,
		OwnerUserID: userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, team); err != nil {
		return nil, err
	}

	resp := toResponse(team, nil)
	return &resp, nil
}

// GetByID retrieves a team with its members. Only members may view a team.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*transport.TeamResponse, error) {
	if err := s.requireMembership(ctx, id, userID); err != nil {
		return nil, err
	}

	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toResponse(team, members)
	return &resp, nil
}

// List retrieves the teams the user belongs to.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (*transport.TeamListResponse, error) {
	teams, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]transport.TeamResponse, len(teams))
	for i := range teams {
		items[i] = toResponse(&teams[i], nil)
	}

	return &transport.TeamListResponse{Items: items, Total: len(items)}, nil
}

// AddMember adds a user to a team. Only the owner may manage membership.
func (s *Service) AddMember(ctx context.Context, teamID uuid.UUID, actorID uuid.UUID, req transport.AddMemberRequest) error {
	if err := s.requireOwner(ctx, teamID, actorID); err != nil {
		return err
	}

	return s.repo.AddMember(ctx, &repository.Member{
		TeamID:    teamID,
		UserID:    req.UserID,
		Role:      repository.RoleMember,
		CreatedAt: time.Now().UTC(),
	})
}

// RemoveMember removes a user from a team. The owner cannot be removed.
func (s *Service) RemoveMember(ctx context.Context, teamID uuid.UUID, actorID uuid.UUID, userID uuid.UUID) error {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.OwnerUserID != actorID {
		return apperr.Forbidden("only the team owner can manage members")
	}
	if userID == team.OwnerUserID {
		return apperr.BadRequest("the team owner cannot be removed")
	}

	return s.repo.RemoveMember(ctx, teamID, userID)
}

// Delete removes a team, its workflows, and every reminder those workflows
// scheduled. The reminder cleanup runs first, synchronously, while the
// workflow rows still exist.
func (s *Service) Delete(ctx context.Context, teamID uuid.UUID, actorID uuid.UUID) error {
	if err := s.requireOwner(ctx, teamID, actorID); err != nil {
		return err
	}

	if s.eventBus != nil {
		if err := s.eventBus.PublishSync(ctx, events.TeamDeleted{
			BaseEvent: events.NewBaseEvent(),
			TeamID:    teamID,
		}); err != nil {
			s.log.Error("failed to clean up team reminders", "teamId", teamID, "error", err)
		}
	}

	if s.workflows != nil {
		removed, err := s.workflows.DeleteByTeam(ctx, teamID)
		if err != nil {
			return err
		}
		s.log.Info("deleted team workflows", "teamId", teamID, "count", removed)
	}

	return s.repo.Delete(ctx, teamID)
}

func (s *Service) requireMembership(ctx context.Context, teamID uuid.UUID, userID uuid.UUID) error {
	member, err := s.repo.IsMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if !member {
		return apperr.Forbidden("not a member of this team")
	}
	return nil
}

func (s *Service) requireOwner(ctx context.Context, teamID uuid.UUID, userID uuid.UUID) error {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.OwnerUserID != userID {
		return apperr.Forbidden("only the team owner can do this")
	}
	return nil
}

func toResponse(team *repository.Team, members []repository.Member) transport.TeamResponse {
	resp := transport.TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		OwnerUserID: team.OwnerUserID,
		CreatedAt:   team.CreatedAt,
		UpdatedAt:   team.UpdatedAt,
	}
	for _, member := range members {
		resp.Members = append(resp.Members, transport.MemberResponse{
			UserID:    member.UserID,
			Role:      member.Role,
			CreatedAt: member.CreatedAt,
		})
	}
	return resp
}
