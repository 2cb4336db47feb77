package slot

import (
	"fmt"

	slotModel "restaurant-reservation/models/slot"
	"restaurant-reservation/utils"
)

// BlockSlotRequest marks one exact (date, time) pair unavailable.
type BlockSlotRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Time   string `json:"time" validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

func (r BlockSlotRequest) Validate() error {
	if r.Date == "" {
		return fmt.Errorf("date is required")
	}
	if r.Time == "" {
		return fmt.Errorf("time is required")
	}
	return utils.ValidateStruct(r)
}

// BlockedSlotView is a BlockedSlot annotated with the derived past flag.
type BlockedSlotView struct {
	slotModel.BlockedSlot
	IsPast bool `json:"is_past"`
}
