package domain

import "testing"

func TestTriggerClassification_PartitionsSupportedSet(t *testing.T) {
	cases := []struct {
		trigger   Trigger
		supported bool
		immediate bool
		timed     bool
	}{
		{TriggerBeforeEvent, true, false, true},
		{TriggerAfterEvent, true, false, true},
		{TriggerNewEvent, true, true, false},
		{TriggerRescheduleEvent, true, true, false},
		{TriggerEventCancelled, true, true, false},
		{Trigger("BOOKING_REQUESTED"), false, false, false},
		{Trigger(""), false, false, false},
	}

	for _, tc := range cases {
		if got := tc.trigger.IsSupported(); got != tc.supported {
			t.Fatalf("%s: IsSupported = %v, want %v", tc.trigger, got, tc.supported)
		}
		if got := tc.trigger.IsImmediate(); got != tc.immediate {
			t.Fatalf("%s: IsImmediate = %v, want %v", tc.trigger, got, tc.immediate)
		}
		if got := tc.trigger.IsTimed(); got != tc.timed {
			t.Fatalf("%s: IsTimed = %v, want %v", tc.trigger, got, tc.timed)
		}
		if tc.supported && tc.immediate == tc.timed {
			t.Fatalf("%s: supported trigger must be exactly one of immediate or timed", tc.trigger)
		}
	}
}

func TestActionClassification_PartitionsSupportedSet(t *testing.T) {
	cases := []struct {
		action    Action
		supported bool
		email     bool
		sms       bool
		attendee  bool
	}{
		{ActionEmailHost, true, true, false, false},
		{ActionEmailAttendee, true, true, false, true},
		{ActionEmailAddress, true, true, false, false},
		{ActionSMSAttendee, true, false, true, true},
		{ActionSMSNumber, true, false, true, false},
		{Action("WHATSAPP_ATTENDEE"), false, false, false, false},
		{Action(""), false, false, false, false},
	}

	for _, tc := range cases {
		if got := tc.action.IsSupported(); got != tc.supported {
			t.Fatalf("%s: IsSupported = %v, want %v", tc.action, got, tc.supported)
		}
		if got := tc.action.IsEmail(); got != tc.email {
			t.Fatalf("%s: IsEmail = %v, want %v", tc.action, got, tc.email)
		}
		if got := tc.action.IsSMS(); got != tc.sms {
			t.Fatalf("%s: IsSMS = %v, want %v", tc.action, got, tc.sms)
		}
		if got := tc.action.IsAttendee(); got != tc.attendee {
			t.Fatalf("%s: IsAttendee = %v, want %v", tc.action, got, tc.attendee)
		}
		if tc.supported && tc.email == tc.sms {
			t.Fatalf("%s: supported action must be exactly one of email or sms", tc.action)
		}
	}
}

func TestMethodFor(t *testing.T) {
	if m, ok := MethodFor(ActionEmailHost); !ok || m != MethodEmail {
		t.Fatalf("expected EMAIL method for EMAIL_HOST, got %q ok=%v", m, ok)
	}
	if m, ok := MethodFor(ActionSMSNumber); !ok || m != MethodSMS {
		t.Fatalf("expected SMS method for SMS_NUMBER, got %q ok=%v", m, ok)
	}
	if _, ok := MethodFor(Action("PUSH")); ok {
		t.Fatal("expected no method for unsupported action")
	}
}
