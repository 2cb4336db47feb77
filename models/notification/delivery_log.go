package notification

import (
	"time"
)

// Delivery outcomes. "skipped" covers missing contact fields and missing
// provider configuration; it is never conflated with "sent".
const (
	DeliveryStatusSent    = "sent"
	DeliveryStatusFailed  = "failed"
	DeliveryStatusSkipped = "skipped"
)

// DeliveryLog is one append-only entry per dispatch attempt, recorded whether
// or not the send succeeded so staff can audit what went out.
type DeliveryLog struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	ReservationID string `gorm:"type:varchar(36);index" json:"reservation_id"`

	Channel   string `gorm:"type:varchar(10);not null" json:"channel"`
	Provider  string `gorm:"type:varchar(50)" json:"provider"`
	Recipient string `gorm:"type:varchar(255)" json:"recipient"`
	Subject   string `gorm:"type:varchar(255)" json:"subject"`
	Body      string `gorm:"type:text" json:"body"`

	Status string `gorm:"type:varchar(10);not null;index" json:"status"`
	Error  string `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the DeliveryLog model
func (DeliveryLog) TableName() string {
	return "delivery_logs"
}
