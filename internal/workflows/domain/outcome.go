package domain

import "github.com/google/uuid"

// Outcome classifies the result of dispatching a single workflow step.
// It replaces a string-sentinel taxonomy: aggregation switches over this
// closed set instead of comparing error text.
type Outcome int

const (
	// OutcomeScheduled means a reminder record was created and handed to the
	// task scheduler.
	OutcomeScheduled Outcome = iota
	// OutcomeSkipped means the step was not applicable (unsupported action or
	// wrong channel) and nothing was attempted.
	OutcomeSkipped
	// OutcomeFailed means dispatch was attempted and did not complete.
	OutcomeFailed
)

// String returns the lowercase outcome label used in logs and API payloads.
func (o Outcome) String() string {
	switch o {
	case OutcomeScheduled:
		return "scheduled"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DispatchResult is the per-step outcome of a schedule operation. It is a
// transient value, never persisted.
type DispatchResult struct {
	WorkflowID uuid.UUID
	StepID     uuid.UUID
	Outcome    Outcome
	// Reason carries the skip or failure explanation; empty when scheduled.
	Reason string
	// ReminderID is set when a reminder record was created.
	ReminderID *uuid.UUID
}

// Scheduled builds a successful dispatch result.
func Scheduled(workflowID, stepID, reminderID uuid.UUID) DispatchResult {
	return DispatchResult{
		WorkflowID: workflowID,
		StepID:     stepID,
		Outcome:    OutcomeScheduled,
		ReminderID: &reminderID,
	}
}

// Skipped builds a skipped dispatch result with the given reason.
func Skipped(workflowID, stepID uuid.UUID, reason string) DispatchResult {
	return DispatchResult{
		WorkflowID: workflowID,
		StepID:     stepID,
		Outcome:    OutcomeSkipped,
		Reason:     reason,
	}
}

// Failed builds a failed dispatch result with the given reason.
func Failed(workflowID, stepID uuid.UUID, reason string) DispatchResult {
	return DispatchResult{
		WorkflowID: workflowID,
		StepID:     stepID,
		Outcome:    OutcomeFailed,
		Reason:     reason,
	}
}

// ScheduleSummary aggregates the per-step results of one scheduling pass.
// Partial success is expected; counts are for observability, not control flow.
type ScheduleSummary struct {
	Scheduled int
	Skipped   int
	Failed    int
	Results   []DispatchResult
}

// Add appends a result and bumps the matching counter.
func (s *ScheduleSummary) Add(r DispatchResult) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case OutcomeScheduled:
		s.Scheduled++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}
