// Package templates renders reminder subject and body text. Rendering is
// literal {VARIABLE} substitution into per-locale default templates (or a
// per-step override), with locale-aware date and time formatting applied at
// render time only.
package templates

import (
	"fmt"
	"strings"
	"time"

	"bookinghub_backend/internal/workflows/domain"
)

// Fallback labels used when event data is missing.
const (
	fallbackAttendee  = "Guest"
	fallbackOrganizer = "Organizer"
	fallbackTitle     = "Event"
	fallbackLocation  = "TBD"
)

// Variables is the fixed substitution vocabulary available to templates.
type Variables struct {
	AttendeeName    string
	OrganizerName   string
	EventTitle      string
	StartTime       time.Time
	EndTime         time.Time
	Timezone        string
	Location        string
	AdditionalNotes string
	MeetingURL      string
	CancelURL       string
	RescheduleURL   string
}

// FromEvent builds the substitution variables for a booking snapshot.
func FromEvent(evt domain.CalendarEvent) Variables {
	vars := Variables{
		OrganizerName:   evt.Organizer.Name,
		EventTitle:      evt.Title,
		StartTime:       evt.StartTime,
		EndTime:         evt.EndTime,
		Timezone:        evt.Timezone(),
		Location:        evt.Location,
		AdditionalNotes: evt.AdditionalNotes,
		MeetingURL:      evt.MeetingURL,
		CancelURL:       evt.CancelURL,
		RescheduleURL:   evt.RescheduleURL,
	}
	if att, ok := evt.FirstAttendee(); ok {
		vars.AttendeeName = att.Name
	}
	return vars
}

// RenderEmail produces the subject and body for an email reminder. A per-step
// override takes precedence over the default template for that trigger; the
// override still goes through the same substitution pass.
func RenderEmail(trigger domain.Trigger, locale string, vars Variables, overrideSubject, overrideBody string) (string, string) {
	set := resolveLocale(locale)
	cat := categoryFor(trigger)

	subject := overrideSubject
	if subject == "" {
		subject = set.emailSubject[cat]
	}
	body := overrideBody
	if body == "" {
		body = set.emailBody[cat]
	}

	return substitute(subject, set, vars), substitute(body, set, vars)
}

// RenderSMS produces the message text for an SMS reminder.
func RenderSMS(trigger domain.Trigger, locale string, vars Variables, overrideBody string) string {
	set := resolveLocale(locale)

	body := overrideBody
	if body == "" {
		body = set.sms[categoryFor(trigger)]
	}

	return substitute(body, set, vars)
}

func categoryFor(trigger domain.Trigger) category {
	switch trigger {
	case domain.TriggerNewEvent:
		return categoryNewBooking
	case domain.TriggerEventCancelled:
		return categoryCancelled
	case domain.TriggerRescheduleEvent:
		return categoryRescheduled
	default:
		// Before/after event reminders share the reminder family.
		return categoryReminder
	}
}

// substitute replaces every occurrence of each template variable. Missing
// values degrade to a sensible label or to the empty string.
func substitute(tpl string, set localeSet, vars Variables) string {
	loc := loadLocation(vars.Timezone)

	replacer := strings.NewReplacer(
		"{ATTENDEE_NAME}", orDefault(vars.AttendeeName, fallbackAttendee),
		"{ORGANIZER_NAME}", orDefault(vars.OrganizerName, fallbackOrganizer),
		"{EVENT_TITLE}", orDefault(vars.EventTitle, fallbackTitle),
		"{EVENT_DATE}", formatLongDate(vars.StartTime.In(loc), set),
		"{EVENT_TIME}", formatClock(vars.StartTime.In(loc)),
		"{EVENT_END_TIME}", formatClock(vars.EndTime.In(loc)),
		"{EVENT_TIMEZONE}", vars.Timezone,
		"{LOCATION}", orDefault(vars.Location, fallbackLocation),
		"{ADDITIONAL_NOTES}", vars.AdditionalNotes,
		"{MEETING_URL}", vars.MeetingURL,
		"{CANCEL_URL}", vars.CancelURL,
		"{RESCHEDULE_URL}", vars.RescheduleURL,
	)

	return replacer.Replace(tpl)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// formatLongDate renders a long-form date in the locale's word order.
func formatLongDate(t time.Time, set localeSet) string {
	weekday := set.weekdays[t.Weekday()]
	month := set.months[t.Month()-1]

	switch set.style {
	case dateStyleEU:
		return fmt.Sprintf("%s %d %s %d", weekday, t.Day(), month, t.Year())
	case dateStyleDE:
		return fmt.Sprintf("%s, %d. %s %d", weekday, t.Day(), month, t.Year())
	default:
		return fmt.Sprintf("%s, %s %d, %d", weekday, month, t.Day(), t.Year())
	}
}

// formatClock renders a 12-hour clock time, e.g. "2:30 PM".
func formatClock(t time.Time) string {
	return t.Format("3:04 PM")
}
