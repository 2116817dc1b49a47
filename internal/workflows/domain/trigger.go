// Package domain holds the workflow automation domain model: the closed
// trigger/action enumerations, the booking snapshot consumed by reminder
// dispatch, and the pure scheduling arithmetic.
package domain

import "time"

// Trigger is the booking lifecycle event that activates a workflow.
type Trigger string

const (
	TriggerBeforeEvent     Trigger = "BEFORE_EVENT"
	TriggerAfterEvent      Trigger = "AFTER_EVENT"
	TriggerNewEvent        Trigger = "NEW_EVENT"
	TriggerRescheduleEvent Trigger = "RESCHEDULE_EVENT"
	TriggerEventCancelled  Trigger = "EVENT_CANCELLED"
)

// IsSupported reports whether the trigger is one of the closed supported set.
// Unknown values are simply unsupported; there is no error path.
func (t Trigger) IsSupported() bool {
	switch t {
	case TriggerBeforeEvent, TriggerAfterEvent, TriggerNewEvent,
		TriggerRescheduleEvent, TriggerEventCancelled:
		return true
	default:
		return false
	}
}

// IsImmediate reports whether reminders for this trigger are dispatched at
// "now" rather than at a computed offset.
func (t Trigger) IsImmediate() bool {
	switch t {
	case TriggerNewEvent, TriggerRescheduleEvent, TriggerEventCancelled:
		return true
	default:
		return false
	}
}

// IsTimed reports whether the trigger requires a signed offset and unit to
// compute a future delivery timestamp.
func (t Trigger) IsTimed() bool {
	switch t {
	case TriggerBeforeEvent, TriggerAfterEvent:
		return true
	default:
		return false
	}
}

// TimeUnit is the unit of a workflow's relative time offset.
type TimeUnit string

const (
	UnitMinute TimeUnit = "MINUTE"
	UnitHour   TimeUnit = "HOUR"
	UnitDay    TimeUnit = "DAY"
)

// Duration converts a signed offset value in this unit to a time.Duration.
// A day is a fixed 24 hours; timestamps are assumed to share a consistent
// reference frame, so no timezone normalization happens here.
func (u TimeUnit) Duration(value int) (time.Duration, bool) {
	switch u {
	case UnitMinute:
		return time.Duration(value) * time.Minute, true
	case UnitHour:
		return time.Duration(value) * time.Hour, true
	case UnitDay:
		return time.Duration(value) * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// Offset is a signed relative time offset. Value and Unit are always set
// together: a workflow either has a complete offset or none at all.
type Offset struct {
	Value int
	Unit  TimeUnit
}
