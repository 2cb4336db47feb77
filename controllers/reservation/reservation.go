package reservation

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"restaurant-reservation/apperrors"
	"restaurant-reservation/logger"
	"restaurant-reservation/middleware"
	reservationModel "restaurant-reservation/models/reservation"
	reservationService "restaurant-reservation/services/reservation"
	"restaurant-reservation/types"
	reservationTypes "restaurant-reservation/types/reservation"

	"github.com/gofiber/fiber/v2"
)

// ReservationController exposes the reservation lifecycle over HTTP
type ReservationController struct {
	Service *reservationService.Service
}

// NewReservationController creates a new reservation controller
func NewReservationController(svc *reservationService.Service) *ReservationController {
	return &ReservationController{Service: svc}
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

// Store accepts a booking from the public form. No authentication.
func (h *ReservationController) Store(c *fiber.Ctx) error {
	var req reservationTypes.ReservationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	reservation, err := h.Service.Create(req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Reservation request received. We will contact you shortly to confirm.",
		Data:    reservation,
	})
}

// List returns reservations, optionally filtered by status and date.
func (h *ReservationController) List(c *fiber.Ctx) error {
	filter := reservationService.ListFilter{
		Status: c.Query("status"),
		Date:   c.Query("date"),
	}

	if filter.Status != "" && !reservationModel.Status(filter.Status).IsValid() {
		return respondError(c, apperrors.Validation("status must be one of pending, confirmed, declined"))
	}

	reservations, err := h.Service.List(filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reservations retrieved successfully",
		Data:    reservations,
	})
}

// Show returns a single reservation by id.
func (h *ReservationController) Show(c *fiber.Ctx) error {
	reservation, err := h.Service.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reservation retrieved successfully",
		Data:    reservation,
	})
}

// UpdateStatus confirms or declines a reservation.
func (h *ReservationController) UpdateStatus(c *fiber.Ctx) error {
	var req reservationTypes.UpdateStatusRequest
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

	actor := middleware.GetUsername(c)
	reservation, err := h.Service.SetStatus(c.Params("id"), reservationModel.Status(req.Status), actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Reservation %s", reservation.Status),
		Data:    reservation,
	})
}

// MarkAttendance records whether a confirmed party showed up.
func (h *ReservationController) MarkAttendance(c *fiber.Ctx) error {
	var req reservationTypes.MarkAttendanceRequest
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

	markedBy := middleware.GetUsername(c)
	reservation, err := h.Service.SetAttendance(c.Params("id"), reservationModel.Attendance(req.Attendance), markedBy)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Attendance marked successfully",
		Data:    reservation,
	})
}

// Delete removes a reservation record.
func (h *ReservationController) Delete(c *fiber.Ctx) error {
	actor := middleware.GetUsername(c)
	if err := h.Service.Delete(c.Params("id"), actor); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reservation deleted successfully",
		Data:    nil,
	})
}

// Export streams all reservations as a CSV attachment.
func (h *ReservationController) Export(c *fiber.Ctx) error {
	filter := reservationService.ListFilter{
		Status: c.Query("status"),
		Date:   c.Query("date"),
	}
	reservations, err := h.Service.List(filter)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="reservations-%s.csv"`, time.Now().Format("2006-01-02")))

	w := csv.NewWriter(c.Response().BodyWriter())
	header := []string{"id", "customer_name", "email", "phone", "date", "time",
		"party_size", "status", "attendance", "special_requests", "created_at"}
	if err := w.Write(header); err != nil {
		return respondError(c, err)
	}

	for _, r := range reservations {
		attendance := ""
		if r.Attendance != nil {
			attendance = r.Attendance.String()
		}
		row := []string{
			r.ID,
			r.CustomerName,
			r.Email,
			r.Phone,
			r.Date,
			r.Time,
			strconv.Itoa(r.PartySize),
			r.Status.String(),
			attendance,
			r.SpecialRequests,
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return respondError(c, err)
		}
	}
	w.Flush()
	return w.Error()
}
