package service

import (
	"context"
	"fmt"
	"time"

	"bookinghub_backend/internal/workflows/domain"
	"bookinghub_backend/internal/workflows/repository"
	"bookinghub_backend/internal/workflows/transport"
	"bookinghub_backend/platform/apperr"
	"bookinghub_backend/platform/phone"

	"github.com/google/uuid"
)

// MembershipChecker reports whether a user belongs to a team.
type MembershipChecker interface {
	IsMember(ctx context.Context, teamID uuid.UUID, userID uuid.UUID) (bool, error)
}

// Service provides business logic for workflows
type Service struct {
	repo    *repository.Repository
	members MembershipChecker
}

// New creates a new workflows service
func New(repo *repository.Repository, members MembershipChecker) *Service {
	return &Service{repo: repo, members: members}
}

// Create creates a new workflow owned by the requesting user or, when teamId
// is set, by a team the user belongs to.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req transport.CreateWorkflowRequest) (*transport.WorkflowResponse, error) {
	if req.TeamID != nil {
		if err := s.requireMembership(ctx, *req.TeamID, userID); err != nil {
			return nil, err
		}
	}

	wf, err := buildWorkflow(userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, wf); err != nil {
		return nil, err
	}

	resp := toResponse(wf)
	return &resp, nil
}

// GetByID retrieves a workflow the user is allowed to see.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*transport.WorkflowResponse, error) {
	wf, err := s.ensureAccess(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	resp := toResponse(wf)
	return &resp, nil
}

// List retrieves workflows owned by the user or by the given team.
func (s *Service) List(ctx context.Context, userID uuid.UUID, teamID *uuid.UUID) (*transport.WorkflowListResponse, error) {
	if teamID != nil {
		if err := s.requireMembership(ctx, *teamID, userID); err != nil {
			return nil, err
		}
	}

	workflows, err := s.repo.ListForOwner(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	items := make([]transport.WorkflowResponse, len(workflows))
	for i := range workflows {
		items[i] = toResponse(&workflows[i])
	}

	return &transport.WorkflowListResponse{Items: items, Total: len(items)}, nil
}

// Update applies partial updates to a workflow and replaces its steps when a
// step list is provided.
func (s *Service) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, req transport.UpdateWorkflowRequest) (*transport.WorkflowResponse, error) {
	wf, err := s.ensureAccess(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		wf.Name = *req.Name
	}
	if req.Trigger != nil {
		wf.Trigger = domain.Trigger(*req.Trigger)
	}
	if req.Offset != nil {
		wf.Offset = &domain.Offset{Value: req.Offset.Value, Unit: domain.TimeUnit(req.Offset.Unit)}
	}
	if wf.Trigger.IsImmediate() {
		wf.Offset = nil
	}
	if req.Steps != nil {
		steps, err := buildSteps(wf.ID, req.Steps)
		if err != nil {
			return nil, err
		}
		wf.Steps = steps
	}
	wf.UpdatedAt = time.Now().UTC()

	if err := wf.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, wf); err != nil {
		return nil, err
	}

	resp := toResponse(wf)
	return &resp, nil
}

// Delete removes a workflow the user owns directly or through a team.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if _, err := s.ensureAccess(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListForBooking retrieves the workflows that apply to a booking: the host's
// personal workflows plus the team's workflows when the booking belongs to one.
func (s *Service) ListForBooking(ctx context.Context, hostUserID uuid.UUID, teamID *uuid.UUID) ([]domain.Workflow, error) {
	return s.repo.ListForOwner(ctx, hostUserID, teamID)
}

// DeleteByTeam removes all workflows owned by a team.
func (s *Service) DeleteByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	return s.repo.DeleteByTeam(ctx, teamID)
}

func (s *Service) ensureAccess(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Workflow, error) {
	wf, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if wf.OwnerUserID != nil {
		if *wf.OwnerUserID != userID {
			return nil, apperr.Forbidden("not authorized to access this workflow")
		}
		return wf, nil
	}
	if wf.OwnerTeamID != nil {
		if err := s.requireMembership(ctx, *wf.OwnerTeamID, userID); err != nil {
			return nil, err
		}
		return wf, nil
	}

	return nil, apperr.Forbidden("not authorized to access this workflow")
}

func (s *Service) requireMembership(ctx context.Context, teamID uuid.UUID, userID uuid.UUID) error {
	if s.members == nil {
		return apperr.Forbidden("team membership checks not configured")
	}
	member, err := s.members.IsMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if !member {
		return apperr.Forbidden("not a member of this team")
	}
	return nil
}

func buildWorkflow(userID uuid.UUID, req transport.CreateWorkflowRequest) (*domain.Workflow, error) {
	now := time.Now().UTC()
	wf := &domain.Workflow{
		ID:        uuid.New(),
		Name:      req.Name,
		Trigger:   domain.Trigger(req.Trigger),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.TeamID != nil {
		wf.OwnerTeamID = req.TeamID
	} else {
		owner := userID
		wf.OwnerUserID = &owner
	}
	if req.Offset != nil {
		wf.Offset = &domain.Offset{Value: req.Offset.Value, Unit: domain.TimeUnit(req.Offset.Unit)}
	}

	steps, err := buildSteps(wf.ID, req.Steps)
	if err != nil {
		return nil, err
	}
	wf.Steps = steps

	if err := wf.Validate(); err != nil {
		return nil, err
	}

	return wf, nil
}

func buildSteps(workflowID uuid.UUID, inputs []transport.StepInput) ([]domain.WorkflowStep, error) {
	steps := make([]domain.WorkflowStep, 0, len(inputs))
	for i, input := range inputs {
		action := domain.Action(input.Action)
		if !action.IsSupported() {
			return nil, apperr.BadRequest(fmt.Sprintf("unsupported action: %s", input.Action))
		}

		sendTo := input.SendTo
		switch action {
		case domain.ActionEmailAddress:
			if sendTo == "" {
				return nil, apperr.BadRequest("sendTo is required for EMAIL_ADDRESS steps")
			}
		case domain.ActionSMSNumber:
			if sendTo == "" {
				return nil, apperr.BadRequest("sendTo is required for SMS_NUMBER steps")
			}
			if !phone.IsValid(sendTo) {
				return nil, apperr.BadRequest("sendTo must be a valid phone number for SMS_NUMBER steps")
			}
			sendTo = phone.NormalizeE164(sendTo)
		}

		steps = append(steps, domain.WorkflowStep{
			ID:                        uuid.New(),
			WorkflowID:                workflowID,
			StepNumber:                i + 1,
			Action:                    action,
			SendTo:                    sendTo,
			EmailSubject:              input.EmailSubject,
			ReminderBody:              input.ReminderBody,
			Sender:                    input.Sender,
			NumberRequired:            input.NumberRequired,
			NumberVerificationPending: input.NumberVerificationPending,
		})
	}
	return steps, nil
}

func toResponse(wf *domain.Workflow) transport.WorkflowResponse {
	resp := transport.WorkflowResponse{
		ID:          wf.ID,
		Name:        wf.Name,
		OwnerUserID: wf.OwnerUserID,
		OwnerTeamID: wf.OwnerTeamID,
		Trigger:     string(wf.Trigger),
		Steps:       make([]transport.StepResponse, len(wf.Steps)),
		CreatedAt:   wf.CreatedAt,
		UpdatedAt:   wf.UpdatedAt,
	}
	if wf.Offset != nil {
		resp.Offset = &transport.OffsetInput{Value: wf.Offset.Value, Unit: string(wf.Offset.Unit)}
	}
	for i, step := range wf.Steps {
		resp.Steps[i] = transport.StepResponse{
			ID:                        step.ID,
			StepNumber:                step.StepNumber,
			Action:                    string(step.Action),
			SendTo:                    step.SendTo,
			EmailSubject:              step.EmailSubject,
			ReminderBody:              step.ReminderBody,
			Sender:                    step.Sender,
			NumberRequired:            step.NumberRequired,
			NumberVerificationPending: step.NumberVerificationPending,
		}
	}
	return resp
}
