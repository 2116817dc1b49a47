package domain

import (
	"testing"
	"time"
)

func TestScheduledAt_BeforeEvent(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	got, ok := ScheduledAt(now, TriggerBeforeEvent, &Offset{Value: 30, Unit: UnitMinute}, start, start.Add(time.Hour))
	if !ok {
		t.Fatal("expected a scheduled time")
	}
	if want := start.Add(-30 * time.Minute); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestScheduledAt_AfterEvent(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	got, ok := ScheduledAt(now, TriggerAfterEvent, &Offset{Value: 2, Unit: UnitHour}, end.Add(-time.Hour), end)
	if !ok {
		t.Fatal("expected a scheduled time")
	}
	if want := end.Add(2 * time.Hour); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestScheduledAt_DayUnit(t *testing.T) {
	now := time.Now()
	start := now.Add(72 * time.Hour)

	got, ok := ScheduledAt(now, TriggerBeforeEvent, &Offset{Value: 1, Unit: UnitDay}, start, start.Add(time.Hour))
	if !ok {
		t.Fatal("expected a scheduled time")
	}
	if want := start.Add(-24 * time.Hour); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestScheduledAt_ImmediateTriggersResolveToNow(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)

	for _, trigger := range []Trigger{TriggerNewEvent, TriggerRescheduleEvent, TriggerEventCancelled} {
		got, ok := ScheduledAt(now, trigger, nil, start, start.Add(time.Hour))
		if !ok {
			t.Fatalf("%s: expected a scheduled time", trigger)
		}
		if !got.Equal(now) {
			t.Fatalf("%s: expected now, got %v", trigger, got)
		}
	}
}

func TestScheduledAt_MissingOffsetFails(t *testing.T) {
	now := time.Now()
	if _, ok := ScheduledAt(now, TriggerBeforeEvent, nil, now.Add(time.Hour), now.Add(2*time.Hour)); ok {
		t.Fatal("expected failure for timed trigger without offset")
	}
}

func TestScheduledAt_UnsupportedTriggerFails(t *testing.T) {
	now := time.Now()
	if _, ok := ScheduledAt(now, Trigger("BOOKING_REQUESTED"), &Offset{Value: 1, Unit: UnitHour}, now, now); ok {
		t.Fatal("expected failure for unsupported trigger")
	}
}
