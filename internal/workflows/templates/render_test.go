package templates

import (
	"strings"
	"testing"
	"time"

	"bookinghub_backend/internal/workflows/domain"
)

func fullVariables() Variables {
	return Variables{
		AttendeeName:    "Ada Lovelace",
		OrganizerName:   "Charles Babbage",
		EventTitle:      "Design Review",
		StartTime:       time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC),
		Timezone:        "UTC",
		Location:        "Room 4",
		AdditionalNotes: "Bring the drawings",
		MeetingURL:      "https://meet.example.com/abc",
		CancelURL:       "https://app.example.com/cancel/abc",
		RescheduleURL:   "https://app.example.com/reschedule/abc",
	}
}

func TestRenderEmail_NoVariableTokensLeft(t *testing.T) {
	triggers := []domain.Trigger{
		domain.TriggerBeforeEvent,
		domain.TriggerAfterEvent,
		domain.TriggerNewEvent,
		domain.TriggerRescheduleEvent,
		domain.TriggerEventCancelled,
	}

	for _, trigger := range triggers {
		for _, locale := range []string{"en", "nl", "de"} {
			subject, body := RenderEmail(trigger, locale, fullVariables(), "", "")
			if subject == "" || body == "" {
				t.Fatalf("%s/%s: empty render", trigger, locale)
			}
			for _, out := range []string{subject, body} {
				if strings.Contains(out, "{") || strings.Contains(out, "}") {
					t.Fatalf("%s/%s: unsubstituted token in %q", trigger, locale, out)
				}
			}
		}
	}
}

func TestRenderSMS_NoVariableTokensLeft(t *testing.T) {
	msg := RenderSMS(domain.TriggerBeforeEvent, "en", fullVariables(), "")
	if strings.Contains(msg, "{") {
		t.Fatalf("unsubstituted token in %q", msg)
	}
	if !strings.Contains(msg, "Ada Lovelace") || !strings.Contains(msg, "Design Review") {
		t.Fatalf("expected attendee and title in %q", msg)
	}
}

func TestRenderEmail_OverrideStillSubstituted(t *testing.T) {
	subject, body := RenderEmail(domain.TriggerBeforeEvent, "en", fullVariables(),
		"Custom: {EVENT_TITLE}", "See you soon {ATTENDEE_NAME} at {EVENT_TIME}")

	if subject != "Custom: Design Review" {
		t.Fatalf("unexpected subject %q", subject)
	}
	if body != "See you soon Ada Lovelace at 2:00 PM" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestRenderEmail_MissingValuesDegradeToDefaults(t *testing.T) {
	vars := fullVariables()
	vars.AttendeeName = ""
	vars.OrganizerName = ""
	vars.EventTitle = ""
	vars.Location = ""
	vars.AdditionalNotes = ""

	_, body := RenderEmail(domain.TriggerBeforeEvent, "en", vars, "",
		"{ATTENDEE_NAME}|{ORGANIZER_NAME}|{EVENT_TITLE}|{LOCATION}|{ADDITIONAL_NOTES}")
	if body != "Guest|Organizer|Event|TBD|" {
		t.Fatalf("unexpected fallback rendering %q", body)
	}
}

func TestRenderEmail_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	subject, _ := RenderEmail(domain.TriggerNewEvent, "sv-SE", fullVariables(), "", "")
	if subject != "New event: Design Review" {
		t.Fatalf("expected English fallback, got %q", subject)
	}
}

func TestRenderEmail_LocaleRegionStripped(t *testing.T) {
	subject, _ := RenderEmail(domain.TriggerNewEvent, "de-AT", fullVariables(), "", "")
	if subject != "Neuer Termin: Design Review" {
		t.Fatalf("expected German templates for de-AT, got %q", subject)
	}
}

func TestFormatLongDate_Styles(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday

	if got := formatLongDate(day, locales["en"]); got != "Monday, March 2, 2026" {
		t.Fatalf("en: %q", got)
	}
	if got := formatLongDate(day, locales["nl"]); got != "maandag 2 maart 2026" {
		t.Fatalf("nl: %q", got)
	}
	if got := formatLongDate(day, locales["de"]); got != "Montag, 2. März 2026" {
		t.Fatalf("de: %q", got)
	}
}

func TestSubstitute_ReplacesAllOccurrences(t *testing.T) {
	vars := fullVariables()
	_, body := RenderEmail(domain.TriggerBeforeEvent, "en", vars, "",
		"{EVENT_TITLE} / {EVENT_TITLE} / {EVENT_TITLE}")
	if body != "Design Review / Design Review / Design Review" {
		t.Fatalf("expected all occurrences replaced, got %q", body)
	}
}
