package reservation

import (
	"time"
)

// ReservationStatusEvent is an append-only snapshot of a reservation row,
// written whenever the lifecycle changes so staff can audit who did what.
type ReservationStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ReservationID string `gorm:"type:varchar(36);not null;index" json:"reservation_id"`

	CustomerName string `gorm:"type:varchar(255);not null" json:"customer_name"`
	Email        string `gorm:"type:varchar(255)" json:"email"`
	Phone        string `gorm:"type:varchar(20)" json:"phone"`

	Date      string `gorm:"type:varchar(10);not null" json:"date"`
	Time      string `gorm:"type:varchar(5);not null" json:"time"`
	PartySize int    `gorm:"not null" json:"party_size"`

	Status     Status      `gorm:"type:varchar(20);not null" json:"status"`
	Attendance *Attendance `gorm:"type:varchar(10)" json:"attendance,omitempty"`

	CommunicationPreference Channel `gorm:"type:varchar(10)" json:"communication_preference"`

	EventType string `gorm:"type:varchar(50);not null" json:"event_type"`
	Actor     string `gorm:"type:varchar(255)" json:"actor"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Event types recorded in reservation_status_events.
const (
	EventTypeCreated          = "created"
	EventTypeStatusChanged    = "status_changed"
	EventTypeAttendanceMarked = "attendance_marked"
	EventTypeDeleted          = "deleted"
)

// TableName sets the table name for the ReservationStatusEvent model
func (ReservationStatusEvent) TableName() string {
	return "reservation_status_events"
}
