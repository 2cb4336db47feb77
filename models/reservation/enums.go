package reservation

// Status is the reservation lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no transition leads out of the status.
func (s Status) IsTerminal() bool {
	return s == StatusDeclined
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// Allowed: pending -> confirmed, pending -> declined, confirmed -> declined.
// Nothing ever returns to pending and nothing leaves declined.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusDeclined
	case StatusConfirmed:
		return next == StatusDeclined
	default:
		return false
	}
}

// GetAllStatuses returns all valid reservation statuses.
func GetAllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusDeclined}
}

// Attendance records whether a confirmed party showed up. Terminal once set.
type Attendance string

const (
	AttendanceAttended Attendance = "attended"
	AttendanceNoShow   Attendance = "no-show"
)

func (a Attendance) String() string {
	return string(a)
}

func (a Attendance) IsValid() bool {
	return a == AttendanceAttended || a == AttendanceNoShow
}

// Channel is the customer's chosen notification medium.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelWhatsApp:
		return true
	default:
		return false
	}
}
