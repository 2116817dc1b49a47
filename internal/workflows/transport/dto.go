package transport

import (
	"time"

	"github.com/google/uuid"
)

// OffsetInput describes how far from the event boundary a timed workflow fires.
type OffsetInput struct {
	Value int    `json:"value" binding:"required,min=1"`
	Unit  string `json:"unit" binding:"required,oneof=MINUTE HOUR DAY"`
}

// StepInput describes a single workflow step in a create or update request.
type StepInput struct {
	Action                    string `json:"action" binding:"required"`
	SendTo                    string `json:"sendTo,omitempty"`
	EmailSubject              string `json:"emailSubject,omitempty"`
	ReminderBody              string `json:"reminderBody,omitempty"`
	Sender                    string `json:"sender,omitempty"`
	NumberRequired            bool   `json:"numberRequired"`
	NumberVerificationPending bool   `json:"numberVerificationPending"`
}

// CreateWorkflowRequest is the payload for creating a workflow.
type CreateWorkflowRequest struct {
	Name    string       `json:"name" binding:"required,max=200"`
	TeamID  *uuid.UUID   `json:"teamId,omitempty"`
	Trigger string       `json:"trigger" binding:"required"`
	Offset  *OffsetInput `json:"offset,omitempty"`
	Steps   []StepInput  `json:"steps" binding:"required,min=1,dive"`
}

// UpdateWorkflowRequest is the payload for updating a workflow. Steps, when
// provided, replace the existing step list.
type UpdateWorkflowRequest struct {
	Name    *string      `json:"name,omitempty" binding:"omitempty,max=200"`
	Trigger *string      `json:"trigger,omitempty"`
	Offset  *OffsetInput `json:"offset,omitempty"`
	Steps   []StepInput  `json:"steps,omitempty" binding:"omitempty,min=1,dive"`
}

// StepResponse is the API representation of a workflow step.
type StepResponse struct {
	ID                        uuid.UUID `json:"id"`
	StepNumber                int       `json:"stepNumber"`
	Action                    string    `json:"action"`
	SendTo                    string    `json:"sendTo,omitempty"`
	EmailSubject              string    `json:"emailSubject,omitempty"`
	ReminderBody              string    `json:"reminderBody,omitempty"`
	Sender                    string    `json:"sender,omitempty"`
	NumberRequired            bool      `json:"numberRequired"`
	NumberVerificationPending bool      `json:"numberVerificationPending"`
}

// WorkflowResponse is the API representation of a workflow.
type WorkflowResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	OwnerUserID *uuid.UUID     `json:"ownerUserId,omitempty"`
	OwnerTeamID *uuid.UUID     `json:"ownerTeamId,omitempty"`
	Trigger     string         `json:"trigger"`
	Offset      *OffsetInput   `json:"offset,omitempty"`
	Steps       []StepResponse `json:"steps"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// WorkflowListResponse wraps a list of workflows.
type WorkflowListResponse struct {
	Items []WorkflowResponse `json:"items"`
	Total int                `json:"total"`
}
