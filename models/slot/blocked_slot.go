package slot

import (
	"time"
)

// BlockedSlot marks an exact (date, time) pair unavailable for new bookings.
// At most one block exists per pair; matching is exact, a block at 19:00 does
// not cover 19:01. Past blocks are kept and only flagged as expired.
type BlockedSlot struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	Date string `gorm:"type:varchar(10);not null;uniqueIndex:idx_blocked_slots_date_time" json:"date"`
	Time string `gorm:"type:varchar(5);not null;uniqueIndex:idx_blocked_slots_date_time" json:"time"`

	Reason    string `gorm:"type:text" json:"reason,omitempty"`
	BlockedBy string `gorm:"type:varchar(255);not null" json:"blocked_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"blocked_at"`
}

// TableName sets the table name for the BlockedSlot model
func (BlockedSlot) TableName() string {
	return "blocked_slots"
}
