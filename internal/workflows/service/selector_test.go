package service

import (
	"testing"

	"bookinghub_backend/internal/workflows/domain"

	"github.com/google/uuid"
)

func workflowWith(trigger domain.Trigger) domain.Workflow {
	owner := uuid.New()
	return domain.Workflow{
		ID:          uuid.New(),
		Name:        string(trigger),
		OwnerUserID: &owner,
		Trigger:     trigger,
	}
}

func allTriggerWorkflows() []domain.Workflow {
	return []domain.Workflow{
		workflowWith(domain.TriggerBeforeEvent),
		workflowWith(domain.TriggerAfterEvent),
		workflowWith(domain.TriggerNewEvent),
		workflowWith(domain.TriggerRescheduleEvent),
		workflowWith(domain.TriggerEventCancelled),
	}
}

func triggerSet(workflows []domain.Workflow) map[domain.Trigger]bool {
	set := make(map[domain.Trigger]bool)
	for _, wf := range workflows {
		set[wf.Trigger] = true
	}
	return set
}

func TestEligibleWorkflows(t *testing.T) {
	tests := []struct {
		name   string
		change BookingChange
		want   []domain.Trigger
	}{
		{
			name:   "unconfirmed creation fires nothing",
			change: BookingChange{Kind: ChangeCreated, Confirmed: false, FirstInSeries: true},
			want:   nil,
		},
		{
			name:   "confirmed first booking fires timed and new event",
			change: BookingChange{Kind: ChangeCreated, Confirmed: true, FirstInSeries: true},
			want:   []domain.Trigger{domain.TriggerBeforeEvent, domain.TriggerAfterEvent, domain.TriggerNewEvent},
		},
		{
			name:   "recurring follow-up skips new event",
			change: BookingChange{Kind: ChangeCreated, Confirmed: true, FirstInSeries: false},
			want:   []domain.Trigger{domain.TriggerBeforeEvent, domain.TriggerAfterEvent},
		},
		{
			name:   "reschedule fires reschedule and timed",
			change: BookingChange{Kind: ChangeRescheduled},
			want:   []domain.Trigger{domain.TriggerRescheduleEvent, domain.TriggerBeforeEvent, domain.TriggerAfterEvent},
		},
		{
			name:   "cancellation fires only cancelled",
			change: BookingChange{Kind: ChangeCancelled},
			want:   []domain.Trigger{domain.TriggerEventCancelled},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := triggerSet(EligibleWorkflows(allTriggerWorkflows(), tt.change))
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d triggers, got %d: %v", len(tt.want), len(got), got)
			}
			for _, trigger := range tt.want {
				if !got[trigger] {
					t.Errorf("expected trigger %s to be eligible", trigger)
				}
			}
		})
	}
}

func TestEligibleWorkflowsSkipsUnsupportedTriggers(t *testing.T) {
	workflows := []domain.Workflow{
		workflowWith(domain.TriggerBeforeEvent),
		workflowWith(domain.Trigger("SOMETHING_ELSE")),
	}

	eligible := EligibleWorkflows(workflows, BookingChange{Kind: ChangeRescheduled})
	if len(eligible) != 1 {
		t.Fatalf("expected 1 eligible workflow, got %d", len(eligible))
	}
	if eligible[0].Trigger != domain.TriggerBeforeEvent {
		t.Errorf("expected BEFORE_EVENT workflow, got %s", eligible[0].Trigger)
	}
}
