package analytics

import (
	"time"

	"restaurant-reservation/apperrors"
	"restaurant-reservation/logger"
	notificationModel "restaurant-reservation/models/notification"
	reservationModel "restaurant-reservation/models/reservation"
	slotModel "restaurant-reservation/models/slot"
	"restaurant-reservation/types"
	"restaurant-reservation/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AnalyticsController serves aggregate reservation numbers
type AnalyticsController struct {
	DB *gorm.DB
}

// NewAnalyticsController creates a new analytics controller
func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type summary struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"by_status"`
	Upcoming     int64            `json:"upcoming"`
	Attended     int64            `json:"attended"`
	NoShows      int64            `json:"no_shows"`
	NoShowRate   float64          `json:"no_show_rate"`
	AverageParty float64          `json:"average_party_size"`
	BlockedSlots blockedSlotCount `json:"blocked_slots"`
	Deliveries   map[string]int64 `json:"deliveries"`
}

type blockedSlotCount struct {
	Active int64 `json:"active"`
	Past   int64 `json:"past"`
}

// Summary returns counts for the dashboard: totals per status, attendance
// outcomes with the derived no-show rate, average party size and delivery
// outcomes. Optional from/to date bounds narrow the reservation window.
func (h *AnalyticsController) Summary(c *fiber.Ctx) error {
	base := h.DB.Model(&reservationModel.Reservation{})
	if from := c.Query("from"); from != "" {
		base = base.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		base = base.Where("date <= ?", to)
	}

	out := summary{
		ByStatus:   map[string]int64{},
		Deliveries: map[string]int64{},
	}

	if err := base.Session(&gorm.Session{}).Count(&out.Total).Error; err != nil {
		return fail(c, err)
	}

	var byStatus []statusCount
	if err := base.Session(&gorm.Session{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return fail(c, err)
	}
	for _, row := range byStatus {
		out.ByStatus[row.Status] = row.Count
	}

	if err := base.Session(&gorm.Session{}).
		Where("attendance = ?", reservationModel.AttendanceAttended).
		Count(&out.Attended).Error; err != nil {
		return fail(c, err)
	}
	if err := base.Session(&gorm.Session{}).
		Where("attendance = ?", reservationModel.AttendanceNoShow).
		Count(&out.NoShows).Error; err != nil {
		return fail(c, err)
	}
	if marked := out.Attended + out.NoShows; marked > 0 {
		out.NoShowRate = float64(out.NoShows) / float64(marked)
	}

	// Upcoming: not yet declined, dated today or later. Dates are stored as
	// 2006-01-02 strings, so lexicographic comparison is chronological.
	today := time.Now().Format("2006-01-02")
	if err := base.Session(&gorm.Session{}).
		Where("date >= ? AND status <> ?", today, reservationModel.StatusDeclined).
		Count(&out.Upcoming).Error; err != nil {
		return fail(c, err)
	}

	var avg *float64
	if err := base.Session(&gorm.Session{}).
		Select("avg(party_size)").
		Scan(&avg).Error; err != nil {
		return fail(c, err)
	}
	if avg != nil {
		out.AverageParty = *avg
	}

	var slots []slotModel.BlockedSlot
	if err := h.DB.Find(&slots).Error; err != nil {
		return fail(c, err)
	}
	for _, slot := range slots {
		past, err := utils.SlotInPast(slot.Date, slot.Time)
		if err == nil && past {
			out.BlockedSlots.Past++
		} else {
			out.BlockedSlots.Active++
		}
	}

	var deliveries []statusCount
	if err := h.DB.Model(&notificationModel.DeliveryLog{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&deliveries).Error; err != nil {
		return fail(c, err)
	}
	for _, row := range deliveries {
		out.Deliveries[row.Status] = row.Count
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Analytics summary retrieved successfully",
		Data:    out,
	})
}

func fail(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	logger.Error("Analytics query failed", err)
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: "Internal server error",
		Data:    nil,
	})
}
