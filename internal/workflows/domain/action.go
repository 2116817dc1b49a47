package domain

// Action is the delivery channel and target configured for one workflow step.
type Action string

const (
	ActionEmailHost     Action = "EMAIL_HOST"
	ActionEmailAttendee Action = "EMAIL_ATTENDEE"
	ActionEmailAddress  Action = "EMAIL_ADDRESS"
	ActionSMSAttendee   Action = "SMS_ATTENDEE"
	ActionSMSNumber     Action = "SMS_NUMBER"
)

// IsSupported reports whether the action is one of the closed supported set.
func (a Action) IsSupported() bool {
	switch a {
	case ActionEmailHost, ActionEmailAttendee, ActionEmailAddress,
		ActionSMSAttendee, ActionSMSNumber:
		return true
	default:
		return false
	}
}

// IsEmail reports whether the action delivers over the email channel.
func (a Action) IsEmail() bool {
	switch a {
	case ActionEmailHost, ActionEmailAttendee, ActionEmailAddress:
		return true
	default:
		return false
	}
}

// IsSMS reports whether the action delivers over the SMS channel.
func (a Action) IsSMS() bool {
	switch a {
	case ActionSMSAttendee, ActionSMSNumber:
		return true
	default:
		return false
	}
}

// IsAttendee reports whether the action targets the booking's attendee rather
// than the host or an explicitly configured address.
func (a Action) IsAttendee() bool {
	switch a {
	case ActionEmailAttendee, ActionSMSAttendee:
		return true
	default:
		return false
	}
}

// Method is the persisted delivery method of a reminder record.
type Method string

const (
	MethodEmail Method = "EMAIL"
	MethodSMS   Method = "SMS"
)

// MethodFor returns the delivery method for a supported action.
func MethodFor(a Action) (Method, bool) {
	switch {
	case a.IsEmail():
		return MethodEmail, true
	case a.IsSMS():
		return MethodSMS, true
	default:
		return "", false
	}
}
