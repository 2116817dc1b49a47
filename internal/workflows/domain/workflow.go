package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workflow is a notification automation owned by exactly one of a user or a
// team. Offset is present only for timed triggers (before/after event); for
// immediate triggers it is nil.
type Workflow struct {
	ID          uuid.UUID
	Name        string
	OwnerUserID *uuid.UUID
	OwnerTeamID *uuid.UUID
	Trigger     Trigger
	Offset      *Offset
	Steps       []WorkflowStep
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the workflow's structural invariants: mutually exclusive
// ownership and offset presence matching the trigger category.
func (w Workflow) Validate() error {
	if (w.OwnerUserID == nil) == (w.OwnerTeamID == nil) {
		return errExactlyOneOwner
	}
	if !w.Trigger.IsSupported() {
		return errUnsupportedTrigger
	}
	if w.Trigger.IsTimed() && w.Offset == nil {
		return errOffsetRequired
	}
	if !w.Trigger.IsTimed() && w.Offset != nil {
		return errOffsetNotAllowed
	}
	return nil
}

// WorkflowStep is one ordered action within a workflow.
type WorkflowStep struct {
	ID         uuid.UUID
	WorkflowID uuid.UUID
	StepNumber int
	Action     Action
	// SendTo is the custom recipient override. Required for the *_ADDRESS
	// and *_NUMBER actions; optional override for attendee actions.
	SendTo       string
	EmailSubject string
	ReminderBody string
	Sender       string
	// NumberRequired and NumberVerificationPending only apply to SMS actions
	// targeting a custom number.
	NumberRequired            bool
	NumberVerificationPending bool
}
