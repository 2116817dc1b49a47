package domain

import "time"

// ScheduledAt computes the absolute delivery timestamp for a reminder.
//
//   - Immediate triggers resolve to now.
//   - BEFORE_EVENT resolves to eventStart minus the offset.
//   - AFTER_EVENT resolves to eventEnd plus the offset.
//
// It returns ok=false when a timed trigger is missing its offset, or when the
// trigger is outside the supported set. Pure arithmetic: the caller is
// responsible for passing timestamps in a consistent reference frame.
func ScheduledAt(now time.Time, trigger Trigger, offset *Offset, eventStart, eventEnd time.Time) (time.Time, bool) {
	if trigger.IsImmediate() {
		return now, true
	}

	if !trigger.IsTimed() || offset == nil {
		return time.Time{}, false
	}

	d, ok := offset.Unit.Duration(offset.Value)
	if !ok {
		return time.Time{}, false
	}

	switch trigger {
	case TriggerBeforeEvent:
		return eventStart.Add(-d), true
	case TriggerAfterEvent:
		return eventEnd.Add(d), true
	default:
		return time.Time{}, false
	}
}
