package logger

import (
	"log"

	notificationModel "restaurant-reservation/models/notification"

	"gorm.io/gorm"
)

// AsyncDeliveryLogger persists notification delivery-log entries off the
// dispatch path through a buffered channel, so a slow database write never
// delays a send attempt.
type AsyncDeliveryLogger struct {
	db      *gorm.DB
	channel chan notificationModel.DeliveryLog
}

func NewAsyncDeliveryLogger(db *gorm.DB) *AsyncDeliveryLogger {
	return &AsyncDeliveryLogger{
		db:      db,
		channel: make(chan notificationModel.DeliveryLog, 100), // Buffered channel to hold log entries
	}
}

// ProcessLog drains the channel and writes entries to the database. Run it
// in its own goroutine.
func (logger *AsyncDeliveryLogger) ProcessLog() {
	log.Println("Starting asynchronous delivery logger...")

	for entry := range logger.channel {
		if err := logger.db.Create(&entry).Error; err != nil {
			log.Printf("Failed to insert delivery log entry: %v", err)
		} else {
			log.Printf("Inserted delivery log entry: %s %s -> %s", entry.Channel, entry.Status, entry.Recipient)
		}
	}
}

// Record pushes a delivery-log entry into the channel.
func (logger *AsyncDeliveryLogger) Record(entry notificationModel.DeliveryLog) {
	logger.channel <- entry
}
