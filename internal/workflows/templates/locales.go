package templates

import "strings"

// category groups triggers into the four template families.
type category int

const (
	categoryReminder category = iota
	categoryNewBooking
	categoryCancelled
	categoryRescheduled
)

type dateStyle int

const (
	// "Monday, March 2, 2026"
	dateStyleUS dateStyle = iota
	// "maandag 2 maart 2026"
	dateStyleEU
	// "Montag, 2. März 2026"
	dateStyleDE
)

// localeSet holds every default template and the calendar vocabulary for one
// locale. Template text uses the literal {VARIABLE} vocabulary; substitution
// is plain string replacement, not a templating language.
type localeSet struct {
	weekdays     [7]string  // indexed by time.Weekday
	months       [12]string // indexed by time.Month - 1
	style        dateStyle
	emailSubject map[category]string
	emailBody    map[category]string
	sms          map[category]string
}

const englishLocale = "en"

var locales = map[string]localeSet{
	englishLocale: {
		weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		months:   [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		style:    dateStyleUS,
		emailSubject: map[category]string{
			categoryReminder:    "Reminder: {EVENT_TITLE} - {EVENT_DATE}",
			categoryNewBooking:  "New event: {EVENT_TITLE}",
			categoryCancelled:   "Cancelled: {EVENT_TITLE}",
			categoryRescheduled: "Rescheduled: {EVENT_TITLE}",
		},
		emailBody: map[category]string{
			categoryReminder: "Hi {ATTENDEE_NAME},\n\n" +
				"This is a reminder about your upcoming event.\n\n" +
				"{EVENT_TITLE}\n" +
				"With: {ORGANIZER_NAME}\n" +
				"When: {EVENT_DATE}, {EVENT_TIME} - {EVENT_END_TIME} ({EVENT_TIMEZONE})\n" +
				"Where: {LOCATION}\n" +
				"Notes: {ADDITIONAL_NOTES}\n" +
				"Join: {MEETING_URL}\n\n" +
				"Need to make a change?\n" +
				"Cancel: {CANCEL_URL}\n" +
				"Reschedule: {RESCHEDULE_URL}\n",
			categoryNewBooking: "Hi {ATTENDEE_NAME},\n\n" +
				"Your booking has been confirmed.\n\n" +
				"{EVENT_TITLE}\n" +
				"With: {ORGANIZER_NAME}\n" +
				"When: {EVENT_DATE}, {EVENT_TIME} ({EVENT_TIMEZONE})\n" +
				"Where: {LOCATION}\n\n" +
				"Cancel: {CANCEL_URL}\n" +
				"Reschedule: {RESCHEDULE_URL}\n",
			categoryCancelled: "Hi {ATTENDEE_NAME},\n\n" +
				"Your event has been cancelled.\n\n" +
				"{EVENT_TITLE}\n" +
				"With: {ORGANIZER_NAME}\n" +
				"Was scheduled for: {EVENT_DATE}, {EVENT_TIME} ({EVENT_TIMEZONE})\n",
			categoryRescheduled: "Hi {ATTENDEE_NAME},\n\n" +
				"Your event has been rescheduled.\n\n" +
				"{EVENT_TITLE}\n" +
				"With: {ORGANIZER_NAME}\n" +
				"New time: {EVENT_DATE}, {EVENT_TIME} - {EVENT_END_TIME} ({EVENT_TIMEZONE})\n" +
				"Where: {LOCATION}\n\n" +
				"Cancel: {CANCEL_URL}\n" +
				"Reschedule: {RESCHEDULE_URL}\n",
		},
		sms: map[category]string{
			categoryReminder:    "Hi {ATTENDEE_NAME}, this is a reminder that your event {EVENT_TITLE} with {ORGANIZER_NAME} is on {EVENT_DATE} at {EVENT_TIME} {EVENT_TIMEZONE}.",
			categoryNewBooking:  "Hi {ATTENDEE_NAME}, your booking {EVENT_TITLE} with {ORGANIZER_NAME} on {EVENT_DATE} at {EVENT_TIME} {EVENT_TIMEZONE} is confirmed.",
			categoryCancelled:   "Hi {ATTENDEE_NAME}, your event {EVENT_TITLE} with {ORGANIZER_NAME} on {EVENT_DATE} at {EVENT_TIME} {EVENT_TIMEZONE} has been cancelled.",
			categoryRescheduled: "Hi {ATTENDEE_NAME}, your event {EVENT_TITLE} with {ORGANIZER_NAME} has been moved to {EVENT_DATE} at {EVENT_TIME} {EVENT_TIMEZONE}.",
		},
	},
	"nl": {
		weekdays: [7]string{"zondag", "maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag"},
		months:   [12]string{"januari", "februari", "maart", "april", "mei", "juni", "juli", "augustus", "september", "oktober", "november", "december"},
		style:    dateStyleEU,
		emailSubject: map[category]string{
			categoryReminder:    "Herinnering: {EVENT_TITLE} - {EVENT_DATE}",
			categoryNewBooking:  "Nieuwe afspraak: {EVENT_TITLE}",
			categoryCancelled:   "Geannuleerd: {EVENT_TITLE}",
			categoryRescheduled: "Verzet: {EVENT_TITLE}",
		},
		emailBody: map[category]string{
			categoryReminder: "Hallo {ATTENDEE_NAME},\n\n" +
				"Dit is een herinnering aan uw afspraak.\n\n" +
				"{EVENT_TITLE}\n" +
				"Met: {ORGANIZER_NAME}\n" +
				"Wanneer: {EVENT_DATE}, {EVENT_TIME} - {EVENT_END_TIME} ({EVENT_TIMEZONE})\n" +
				"Waar: {LOCATION}\n" +
				"Notities: {ADDITIONAL_NOTES}\n" +
				"Deelnemen: {MEETING_URL}\n\n" +
				"Annuleren: {CANCEL_URL}\n" +
				"Verzetten: {RESCHEDULE_URL}\n",
			categoryNewBooking: "Hallo {ATTENDEE_NAME},\n\n" +
				"Uw afspraak is bevestigd.\n\n" +
				"{EVENT_TITLE}\n" +
				"Met: {ORGANIZER_NAME}\n" +
				"Wanneer: {EVENT_DATE}, {EVENT_TIME} ({EVENT_TIMEZONE})\n" +
				"Waar: {LOCATION}\n\n" +
				"Annuleren: {CANCEL_URL}\n" +
				"Verzetten: {RESCHEDULE_URL}\n",
			categoryCancelled: "Hallo {ATTENDEE_NAME},\n\n" +
				"Uw afspraak is geannuleerd.\n\n" +
				"{EVENT_TITLE}\n" +
				"Met: {ORGANIZER_NAME}\n" +
				"Stond gepland op: {EVENT_DATE}, {EVENT_TIME} ({EVENT_TIMEZONE})\n",
			categoryRescheduled: "Hallo {ATTENDEE_NAME},\n\n" +
				"Uw afspraak is verzet.\n\n" +
				"{EVENT_TITLE}\n" +
				"Met: {ORGANIZER_NAME}\n" +
				"Nieuwe tijd: {EVENT_DATE}, {EVENT_TIME} - {EVENT_END_TIME} ({EVENT_TIMEZONE})\n" +
				"Waar: {LOCATION}\n\n" +
				"Annuleren: {CANCEL_URL}\n" +
				"Verzetten: {RESCHEDULE_URL}\n",
		},
		sms: map[category]string{
			categoryReminder:    "Hallo {ATTENDEE_NAME}, dit is een herinnering aan {EVENT_TITLE} met {ORGANIZER_NAME} op {EVENT_DATE} om {EVENT_TIME} {EVENT_TIMEZONE}.",
			categoryNewBooking:  "Hallo {ATTENDEE_NAME}, uw afspraak {EVENT_TITLE} met {ORGANIZER_NAME} op {EVENT_DATE} om {EVENT_TIME} {EVENT_TIMEZONE} is bevestigd.",
			categoryCancelled:   "Hallo {ATTENDEE_NAME}, uw afspraak {EVENT_TITLE} met {ORGANIZER_NAME} op {EVENT_DATE} om {EVENT_TIME} {EVENT_TIMEZONE} is geannuleerd.",
			categoryRescheduled: "Hallo {ATTENDEE_NAME}, uw afspraak {EVENT_TITLE} met {ORGANIZER_NAME} is verzet naar {EVENT_DATE} om {EVENT_TIME} {EVENT_TIMEZONE}.",
		},
	},
	"de": {
		weekdays: [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		months:   [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		style:    dateStyleDE,
		emailSubject: map[category]string{
			categoryReminder:    "Erinnerung: {EVENT_TITLE} - {EVENT_DATE}",
			categoryNewBooking:  "Neuer Termin: {EVENT_TITLE}",
			categoryCancelled:   "Storniert: {EVENT_TITLE}",
			categoryRescheduled: "Verschoben: {EVENT_TITLE}",
		},
		emailBody: map[category]string{
			categoryReminder: "Hallo {ATTENDEE_NAME},\n\n" +
				"dies ist eine Erinnerung an Ihren Termin.\n\n" +
				"{EVENT_TITLE}\n" +
				"Mit: {ORGANIZER_NAME}\n" +
				"Wann: {EVENT_DATE}, {EVENT_TIME} - {EVENT_END_TIME} ({EVENT_TIMEZONE})\n" +
				"Wo: {LOCATION}\n" +
				"Notizen: {ADDITIONAL_NOTES}\n" +
				"Teilnehmen: {MEETING_URL}\n\n" +
				"Stornieren: {CANCEL_URL}\n" +
				"Verschieben: {RESCHEDULE_URL}\n",
			categoryNewBooking: "Hallo {ATTENDEE_NAME},\n\n" +
				"Ihr Termin wurde bestätigt.\n\n" +
				"{EVENT_TITLE}\n" +
				"Mit: {ORGANIZER_NAME}\n" +
				"Wann: {EVENT_DATE}, {EVENT_TIME} ({EVENT_TIMEZONE})\n" +
				"Wo: {LOCATION}\n\n" +
				"Stornieren: {CANCEL_URL}\n" +
				"Verschieben: {RESCHEDULE_URL}\n",
			categoryCancelled: "Hallo {ATTENDEE_NAME},\n\n" +
				"Ihr Termin wurde storniert.\n\n" +
				"{EVENT_TITLE}\n" +
				"Mit: {ORGANIZER_NAME}\n" +
				"War geplant für: {EVENT_DATE}, {EVENT_TIME} ({EVENT_TIMEZONE})\n",
			categoryRescheduled: "Hallo {ATTENDEE_NAME},\n\n" +
				"Ihr Termin wurde verschoben.\n\n" +
				"{EVENT_TITLE}\n" +
				"Mit: {ORGANIZER_NAME}\n" +
				"Neue Zeit: {EVENT_DATE}, {EVENT_TIME} - {EVENT_END_TIME} ({EVENT_TIMEZONE})\n" +
				"Wo: {LOCATION}\n\n" +
				"Stornieren: {CANCEL_URL}\n" +
				"Verschieben: {RESCHEDULE_URL}\n",
		},
		sms: map[category]string{
			categoryReminder:    "Hallo {ATTENDEE_NAME}, Erinnerung an {EVENT_TITLE} mit {ORGANIZER_NAME} am {EVENT_DATE} um {EVENT_TIME} {EVENT_TIMEZONE}.",
			categoryNewBooking:  "Hallo {ATTENDEE_NAME}, Ihr Termin {EVENT_TITLE} mit {ORGANIZER_NAME} am {EVENT_DATE} um {EVENT_TIME} {EVENT_TIMEZONE} ist bestätigt.",
			categoryCancelled:   "Hallo {ATTENDEE_NAME}, Ihr Termin {EVENT_TITLE} mit {ORGANIZER_NAME} am {EVENT_DATE} um {EVENT_TIME} {EVENT_TIMEZONE} wurde storniert.",
			categoryRescheduled: "Hallo {ATTENDEE_NAME}, Ihr Termin {EVENT_TITLE} mit {ORGANIZER_NAME} wurde verschoben auf {EVENT_DATE} um {EVENT_TIME} {EVENT_TIMEZONE}.",
		},
	},
}

// resolveLocale maps a BCP-47-ish locale tag to a template set, falling back
// to English for unknown locales. Region subtags are stripped ("de-AT" -> "de").
func resolveLocale(locale string) localeSet {
	tag := strings.ToLower(strings.TrimSpace(locale))
	if idx := strings.IndexAny(tag, "-_"); idx > 0 {
		tag = tag[:idx]
	}
	if set, ok := locales[tag]; ok {
		return set
	}
	return locales[englishLocale]
}
