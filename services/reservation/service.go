package reservation

import (
	"errors"
	"fmt"
	"time"

	"restaurant-reservation/apperrors"
	"restaurant-reservation/events"
	"restaurant-reservation/logger"
	"restaurant-reservation/metrics"
	reservationModel "restaurant-reservation/models/reservation"
	"restaurant-reservation/services/reservation_event"
	slotService "restaurant-reservation/services/slot"
	reservationTypes "restaurant-reservation/types/reservation"
	"restaurant-reservation/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service owns the reservation lifecycle. Every mutation commits inside a
// transaction together with its audit snapshot; domain events are published
// only after the commit.
type Service struct {
	db      *gorm.DB
	bus     *events.Bus
	blocked func(date, timeOfDay string) (bool, error)
}

func NewService(db *gorm.DB, bus *events.Bus) *Service {
	return &Service{
		db:  db,
		bus: bus,
		blocked: func(date, timeOfDay string) (bool, error) {
			return slotService.IsBlocked(db, date, timeOfDay)
		},
	}
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Status string
	Date   string
}

// Create validates the booking form, gates it against blocked slots and
// stores the reservation as pending. The acknowledgement notification is a
// subscriber concern; its failure cannot undo the booking.
func (s *Service) Create(req reservationTypes.ReservationCreateRequest) (*reservationModel.Reservation, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	past, err := utils.DateBeforeToday(req.Date)
	if err != nil {
		return nil, apperrors.Validation("invalid date: %v", err)
	}
	if past {
		return nil, apperrors.Validation("reservation date cannot be in the past")
	}

	if _, err := utils.ParseSlot(req.Date, req.Time); err != nil {
		return nil, apperrors.Validation("invalid time: %v", err)
	}

	blocked, err := s.blocked(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, apperrors.Conflict("this time slot is not available for reservations")
	}

	preference := reservationModel.Channel(req.CommunicationPreference)
	if !preference.IsValid() {
		preference = reservationModel.ChannelEmail
	}

	reservation := reservationModel.Reservation{
		ID:                      uuid.NewString(),
		CustomerName:            req.CustomerName,
		Email:                   req.Email,
		Phone:                   utils.NormalizePhone(req.Phone),
		Date:                    req.Date,
		Time:                    req.Time,
		PartySize:               req.PartySize,
		SpecialRequests:         req.SpecialRequests,
		Status:                  reservationModel.StatusPending,
		CommunicationPreference: preference,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		return reservation_event.SnapshotToEvent(tx, &reservation, reservationModel.EventTypeCreated, "customer")
	})
	if err != nil {
		logger.Error("Failed to create reservation", err)
		return nil, err
	}

	metrics.ReservationsCreated.Inc()
	logger.Success(fmt.Sprintf("Reservation created: %s for %s %s", reservation.ID, reservation.Date, reservation.Time))

	s.bus.Publish(events.ReservationEvent{
		Type:        events.TypeReservationCreated,
		Reservation: reservation,
		Actor:       "customer",
		OccurredAt:  time.Now(),
	})

	return &reservation, nil
}

// checkTransition validates a status write against the lifecycle. noop is
// true when the write carries the current status and nothing should change
// or be published.
func checkTransition(current, next reservationModel.Status) (noop bool, err error) {
	if !next.IsValid() {
		return false, apperrors.Validation("invalid status: %s", next)
	}
	if current == next {
		return true, nil
	}
	if !current.CanTransitionTo(next) {
		return false, apperrors.Conflict("cannot change status from %s to %s", current, next)
	}
	return false, nil
}

// checkAttendance validates an attendance write: confirmed reservations only,
// never twice, and only after the slot has passed.
func checkAttendance(r *reservationModel.Reservation, attendance reservationModel.Attendance) error {
	if !attendance.IsValid() {
		return apperrors.Validation("invalid attendance: %s", attendance)
	}
	if r.Status != reservationModel.StatusConfirmed {
		return apperrors.Conflict("attendance can only be marked on confirmed reservations")
	}
	if r.Attendance != nil {
		return apperrors.Conflict("attendance has already been marked")
	}
	past, err := utils.SlotInPast(r.Date, r.Time)
	if err != nil {
		return err
	}
	if !past {
		return apperrors.Conflict("attendance can only be marked after the reservation time has passed")
	}
	return nil
}

// SetStatus moves a reservation through the lifecycle. A write with the
// current status is a no-op and publishes nothing; only a genuine change
// triggers a notification.
func (s *Service) SetStatus(id string, next reservationModel.Status, actor string) (*reservationModel.Reservation, error) {
	if !next.IsValid() {
		return nil, apperrors.Validation("invalid status: %s", next)
	}

	reservation, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	noop, err := checkTransition(reservation.Status, next)
	if err != nil {
		return nil, err
	}
	if noop {
		return reservation, nil
	}

	previous := reservation.Status
	reservation.Status = next

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&reservationModel.Reservation{}).
			Where("id = ?", reservation.ID).
			Update("status", next).Error; err != nil {
			return err
		}
		return reservation_event.SnapshotToEvent(tx, reservation, reservationModel.EventTypeStatusChanged, actor)
	})
	if err != nil {
		logger.Error("Failed to update reservation status", err)
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(next.String()).Inc()
	logger.Success(fmt.Sprintf("Reservation %s: %s -> %s by %s", reservation.ID, previous, next, actor))

	s.bus.Publish(events.ReservationEvent{
		Type:           events.TypeStatusChanged,
		Reservation:    *reservation,
		PreviousStatus: previous,
		Actor:          actor,
		OccurredAt:     time.Now(),
	})

	return reservation, nil
}

// SetAttendance records attended/no-show for a confirmed reservation whose
// slot has already passed. Attendance is terminal once set.
func (s *Service) SetAttendance(id string, attendance reservationModel.Attendance, markedBy string) (*reservationModel.Reservation, error) {
	if !attendance.IsValid() {
		return nil, apperrors.Validation("invalid attendance: %s", attendance)
	}

	reservation, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := checkAttendance(reservation, attendance); err != nil {
		return nil, err
	}

	now := time.Now()
	reservation.Attendance = &attendance
	reservation.AttendanceMarkedAt = &now
	reservation.AttendanceMarkedBy = &markedBy

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&reservationModel.Reservation{}).
			Where("id = ?", reservation.ID).
			Updates(map[string]interface{}{
				"attendance":           attendance,
				"attendance_marked_at": now,
				"attendance_marked_by": markedBy,
			}).Error; err != nil {
			return err
		}
		return reservation_event.SnapshotToEvent(tx, reservation, reservationModel.EventTypeAttendanceMarked, markedBy)
	})
	if err != nil {
		logger.Error("Failed to mark attendance", err)
		return nil, err
	}

	logger.Success(fmt.Sprintf("Attendance for %s marked %s by %s", reservation.ID, attendance, markedBy))
	return reservation, nil
}

// Delete removes a reservation. The audit snapshot survives the row.
func (s *Service) Delete(id string, actor string) error {
	reservation, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := reservation_event.SnapshotToEvent(tx, reservation, reservationModel.EventTypeDeleted, actor); err != nil {
			return err
		}
		return tx.Delete(&reservationModel.Reservation{}, "id = ?", id).Error
	})
}

// Get fetches one reservation by id.
func (s *Service) Get(id string) (*reservationModel.Reservation, error) {
	var reservation reservationModel.Reservation
	if err := s.db.First(&reservation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reservation not found")
		}
		return nil, err
	}
	return &reservation, nil
}

// List returns reservations ordered by (date, time) descending. Callers that
// need a different ordering sort explicitly.
func (s *Service) List(filter ListFilter) ([]reservationModel.Reservation, error) {
	query := s.db.Model(&reservationModel.Reservation{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}

	var reservations []reservationModel.Reservation
	if err := query.Order("date DESC, time DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}
