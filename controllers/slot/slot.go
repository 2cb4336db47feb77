package slot

import (
	"restaurant-reservation/apperrors"
	"restaurant-reservation/logger"
	"restaurant-reservation/middleware"
	slotService "restaurant-reservation/services/slot"
	"restaurant-reservation/types"
	slotTypes "restaurant-reservation/types/slot"

	"github.com/gofiber/fiber/v2"
)

// SlotController manages blocked time slots
type SlotController struct {
	Service *slotService.Service
}

// NewSlotController creates a new slot controller
func NewSlotController(svc *slotService.Service) *SlotController {
	return &SlotController{Service: svc}
}

func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Error("Request failed", err)
		message = "Internal server error"
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: message,
		Data:    nil,
	})
}

// Block marks a (date, time) pair as unavailable for new reservations.
func (h *SlotController) Block(c *fiber.Ctx) error {
	var req slotTypes.BlockSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return respondError(c, apperrors.Validation("%s", err.Error()))
	}

	blocked, err := h.Service.Block(req, middleware.GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Time slot blocked successfully",
		Data:    blocked,
	})
}

// Unblock makes a previously blocked slot available again.
func (h *SlotController) Unblock(c *fiber.Ctx) error {
	if err := h.Service.Unblock(c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Time slot unblocked successfully",
		Data:    nil,
	})
}

// List returns all blocked slots, newest first, with a past-slot flag.
func (h *SlotController) List(c *fiber.Ctx) error {
	slots, err := h.Service.List()
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Blocked slots retrieved successfully",
		Data:    slots,
	})
}
