package domain

import "time"

// Person is an organizer or attendee on a booking snapshot.
type Person struct {
	Name     string
	Email    string
	Phone    string
	Locale   string
	Timezone string
}

// CalendarEvent is an immutable snapshot of a booking handed to the reminder
// subsystem. It is read-only input and never mutated here; the booking's own
// lifecycle lives outside this subsystem.
type CalendarEvent struct {
	BookingUID      string
	Title           string
	StartTime       time.Time
	EndTime         time.Time
	Organizer       Person
	Attendees       []Person
	Location        string
	AdditionalNotes string
	MeetingURL      string
	CancelURL       string
	RescheduleURL   string
}

// FirstAttendee returns the first attendee and true, or a zero Person and
// false for an attendee-less snapshot.
func (e CalendarEvent) FirstAttendee() (Person, bool) {
	if len(e.Attendees) == 0 {
		return Person{}, false
	}
	return e.Attendees[0], true
}

// Locale returns the rendering locale: the first attendee's locale when set,
// otherwise English.
func (e CalendarEvent) Locale() string {
	if att, ok := e.FirstAttendee(); ok && att.Locale != "" {
		return att.Locale
	}
	return "en"
}

// Timezone returns the rendering timezone: first attendee's, falling back to
// the organizer's, falling back to UTC.
func (e CalendarEvent) Timezone() string {
	if att, ok := e.FirstAttendee(); ok && att.Timezone != "" {
		return att.Timezone
	}
	if e.Organizer.Timezone != "" {
		return e.Organizer.Timezone
	}
	return "UTC"
}
