package reservation_event

import (
	reservationModel "restaurant-reservation/models/reservation"

	"gorm.io/gorm"
)

// SnapshotToEvent writes a full snapshot of a Reservation row into
// reservation_status_events with the given event type. Called inside the
// same transaction as the mutation so the audit trail can never diverge
// from the row.
func SnapshotToEvent(tx *gorm.DB, r *reservationModel.Reservation, eventType string, actor string) error {
	ev := reservationModel.ReservationStatusEvent{
		ReservationID: r.ID,

		CustomerName: r.CustomerName,
		Email:        r.Email,
		Phone:        r.Phone,

		Date:      r.Date,
		Time:      r.Time,
		PartySize: r.PartySize,

		Status:     r.Status,
		Attendance: r.Attendance,

		CommunicationPreference: r.CommunicationPreference,

		EventType: eventType,
		Actor:     actor,
	}

	return tx.Create(&ev).Error
}
