package notification

import (
	"restaurant-reservation/apperrors"
	"restaurant-reservation/logger"
	"restaurant-reservation/middleware"
	notificationModel "restaurant-reservation/models/notification"
	reservationModel "restaurant-reservation/models/reservation"
	notificationService "restaurant-reservation/services/notification"
	"restaurant-reservation/types"
	notificationTypes "restaurant-reservation/types/notification"
	"restaurant-reservation/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationController manages provider configs and delivery logs
type NotificationController struct {
	DB         *gorm.DB
	Dispatcher *notificationService.Dispatcher
}

// NewNotificationController creates a new notification controller
func NewNotificationController(db *gorm.DB, dispatcher *notificationService.Dispatcher) *NotificationController {
	return &NotificationController{DB: db, Dispatcher: dispatcher}
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

// Logs returns the delivery log, newest first, optionally filtered by
// reservation id or status.
func (h *NotificationController) Logs(c *fiber.Ctx) error {
	query := h.DB.Model(&notificationModel.DeliveryLog{})
	if reservationID := c.Query("reservation_id"); reservationID != "" {
		query = query.Where("reservation_id = ?", reservationID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var logs []notificationModel.DeliveryLog
	if err := query.Order("created_at DESC").Limit(500).Find(&logs).Error; err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery logs retrieved successfully",
		Data:    logs,
	})
}

// ListConfigs returns the stored provider configs with secrets redacted.
func (h *NotificationController) ListConfigs(c *fiber.Ctx) error {
	var configs []notificationModel.ProviderConfig
	if err := h.DB.Order("channel ASC, updated_at DESC").Find(&configs).Error; err != nil {
		return respondError(c, err)
	}

	redacted := make([]notificationModel.ProviderConfig, 0, len(configs))
	for i := range configs {
		redacted = append(redacted, configs[i].Redacted())
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Provider configurations retrieved successfully",
		Data:    redacted,
	})
}

// SaveConfig validates and stores a provider config for a channel. Secret
// fields are encrypted before they touch the database, and any previously
// active config for the channel is deactivated in the same transaction.
func (h *NotificationController) SaveConfig(c *fiber.Ctx) error {
	var req notificationTypes.SaveProviderConfigRequest
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

	cfg := notificationModel.ProviderConfig{
		ID:        uuid.NewString(),
		Channel:   req.Channel,
		Provider:  req.Provider,
		Settings:  notificationModel.SettingsMap(req.Settings),
		IsActive:  true,
		CreatedBy: middleware.GetUsername(c),
	}

	// Validate against plaintext settings before encrypting secrets.
	if err := cfg.Validate(); err != nil {
		return respondError(c, err)
	}

	for key, value := range cfg.Settings {
		if !notificationModel.SecretFields[key] {
			continue
		}
		encrypted, err := utils.EncryptData(value)
		if err != nil {
			return respondError(c, apperrors.Configuration("failed to encrypt %s: %v", key, err))
		}
		cfg.Settings[key] = encrypted
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&notificationModel.ProviderConfig{}).
			Where("channel = ? AND is_active = ?", cfg.Channel, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(&cfg).Error
	})
	if err != nil {
		return respondError(c, err)
	}

	logger.Success("Provider config saved: " + cfg.Channel + "/" + cfg.Provider)
	redacted := cfg.Redacted()
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Provider configuration saved successfully",
		Data:    redacted,
	})
}

// DeleteConfig removes a stored provider config.
func (h *NotificationController) DeleteConfig(c *fiber.Ctx) error {
	result := h.DB.Delete(&notificationModel.ProviderConfig{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		return respondError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return respondError(c, apperrors.NotFound("provider configuration not found"))
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Provider configuration deleted successfully",
		Data:    nil,
	})
}

// TestSend fires a test message through the active adapter of a channel.
func (h *NotificationController) TestSend(c *fiber.Ctx) error {
	var req notificationTypes.TestSendRequest
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

	if err := h.Dispatcher.TestSend(reservationModel.Channel(req.Channel), req.Recipient); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Test notification sent successfully",
		Data:    nil,
	})
}
