package service

import "bookinghub_backend/internal/workflows/domain"

// ChangeKind classifies what happened to a booking.
type ChangeKind string

const (
	ChangeCreated     ChangeKind = "created"
	ChangeRescheduled ChangeKind = "rescheduled"
	ChangeCancelled   ChangeKind = "cancelled"
)

// BookingChange describes a booking lifecycle transition for workflow selection.
type BookingChange struct {
	Kind ChangeKind
	// Confirmed distinguishes confirmed bookings from ones still awaiting
	// host approval. Unconfirmed creations fire nothing.
	Confirmed bool
	// FirstInSeries is true for the first booking of a recurring series.
	// NEW_EVENT workflows fire once per series, not per occurrence.
	FirstInSeries bool
}

// TriggersFor returns the set of triggers that should fire for a booking change.
func TriggersFor(change BookingChange) map[domain.Trigger]bool {
	triggers := make(map[domain.Trigger]bool)

	switch change.Kind {
	case ChangeCreated:
		if !change.Confirmed {
			return triggers
		}
		triggers[domain.TriggerBeforeEvent] = true
		triggers[domain.TriggerAfterEvent] = true
		if change.FirstInSeries {
			triggers[domain.TriggerNewEvent] = true
		}
	case ChangeRescheduled:
		triggers[domain.TriggerRescheduleEvent] = true
		triggers[domain.TriggerBeforeEvent] = true
		triggers[domain.TriggerAfterEvent] = true
	case ChangeCancelled:
		triggers[domain.TriggerEventCancelled] = true
	}

	return triggers
}

// EligibleWorkflows filters workflows down to those whose trigger fires for
// the given booking change. Workflows with unsupported triggers never match.
func EligibleWorkflows(all []domain.Workflow, change BookingChange) []domain.Workflow {
	triggers := TriggersFor(change)
	if len(triggers) == 0 {
		return nil
	}

	var eligible []domain.Workflow
	for _, wf := range all {
		if wf.Trigger.IsSupported() && triggers[wf.Trigger] {
			eligible = append(eligible, wf)
		}
	}
	return eligible
}
