package reservation

import (
	"time"
)

// Reservation represents a customer's request to dine at a given date, time
// and party size, with its lifecycle status and attendance record.
type Reservation struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	CustomerName string `gorm:"type:varchar(255);not null" json:"customer_name"`
	Email        string `gorm:"type:varchar(255)" json:"email"`
	Phone        string `gorm:"type:varchar(20)" json:"phone"`

	Date            string `gorm:"type:varchar(10);not null;index" json:"date"` // 2006-01-02
	Time            string `gorm:"type:varchar(5);not null" json:"time"`        // 15:04, 24h
	PartySize       int    `gorm:"not null" json:"party_size"`
	SpecialRequests string `gorm:"type:text" json:"special_requests,omitempty"`

	Status Status `gorm:"type:varchar(20);not null;index" json:"status"`

	Attendance         *Attendance `gorm:"type:varchar(10)" json:"attendance,omitempty"`
	AttendanceMarkedAt *time.Time  `json:"attendance_marked_at,omitempty"`
	AttendanceMarkedBy *string     `gorm:"type:varchar(255)" json:"attendance_marked_by,omitempty"`

	CommunicationPreference Channel `gorm:"type:varchar(10);not null;default:email" json:"communication_preference"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ContactFor returns the contact field a channel delivers to.
func (r *Reservation) ContactFor(ch Channel) string {
	switch ch {
	case ChannelEmail:
		return r.Email
	case ChannelSMS, ChannelWhatsApp:
		return r.Phone
	default:
		return ""
	}
}
