package slot

import (
	"errors"
	"fmt"

	"restaurant-reservation/apperrors"
	"restaurant-reservation/logger"
	slotModel "restaurant-reservation/models/slot"
	slotTypes "restaurant-reservation/types/slot"
	"restaurant-reservation/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service owns blocked-slot bookkeeping.
type Service struct {
	db      *gorm.DB
	blocked func(date, timeOfDay string) (bool, error)
}

func NewService(db *gorm.DB) *Service {
	s := &Service{db: db}
	s.blocked = func(date, timeOfDay string) (bool, error) {
		return IsBlocked(db, date, timeOfDay)
	}
	return s
}

// IsBlocked does an exact-match lookup: a block at 19:00 does not cover
// 19:01.
func IsBlocked(db *gorm.DB, date, timeOfDay string) (bool, error) {
	var count int64
	err := db.Model(&slotModel.BlockedSlot{}).
		Where("date = ? AND time = ?", date, timeOfDay).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Service) IsBlocked(date, timeOfDay string) (bool, error) {
	return s.blocked(date, timeOfDay)
}

// Block marks one (date, time) pair unavailable. Past slots and duplicates
// are rejected before anything is written.
func (s *Service) Block(req slotTypes.BlockSlotRequest, blockedBy string) (*slotModel.BlockedSlot, error) {
	past, err := utils.SlotInPast(req.Date, req.Time)
	if err != nil {
		return nil, apperrors.Validation("invalid date or time: %v", err)
	}
	if past {
		return nil, apperrors.Validation("cannot block past time slots")
	}

	blocked, err := s.IsBlocked(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, apperrors.Conflict("this time slot is already blocked")
	}

	slot := slotModel.BlockedSlot{
		ID:        uuid.NewString(),
		Date:      req.Date,
		Time:      req.Time,
		Reason:    req.Reason,
		BlockedBy: blockedBy,
	}
	if err := s.db.Create(&slot).Error; err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Blocked slot %s %s by %s", slot.Date, slot.Time, blockedBy))
	return &slot, nil
}

// Unblock removes a block by id.
func (s *Service) Unblock(id string) error {
	var slot slotModel.BlockedSlot
	if err := s.db.First(&slot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("blocked slot not found")
		}
		return err
	}
	return s.db.Delete(&slot).Error
}

// List returns every block, newest first, annotated with the derived past
// flag. Past blocks are kept in the data set; only the flag distinguishes
// them.
func (s *Service) List() ([]slotTypes.BlockedSlotView, error) {
	var slots []slotModel.BlockedSlot
	if err := s.db.Order("date DESC, time DESC").Find(&slots).Error; err != nil {
		return nil, err
	}

	views := make([]slotTypes.BlockedSlotView, 0, len(slots))
	for _, slot := range slots {
		past, err := utils.SlotInPast(slot.Date, slot.Time)
		if err != nil {
			past = false
		}
		views = append(views, slotTypes.BlockedSlotView{BlockedSlot: slot, IsPast: past})
	}
	return views, nil
}
