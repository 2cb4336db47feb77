package notification

import (
	"fmt"

	reservationModel "restaurant-reservation/models/reservation"
)

// SaveProviderConfigRequest creates or replaces the active provider
// configuration for a channel. Field-level validation happens against the
// provider's required-field set in the model.
type SaveProviderConfigRequest struct {
	Channel  string            `json:"channel" validate:"required,oneof=email sms whatsapp"`
	Provider string            `json:"provider" validate:"required"`
	Settings map[string]string `json:"settings" validate:"required"`
}

func (r SaveProviderConfigRequest) Validate() error {
	if !reservationModel.Channel(r.Channel).IsValid() {
		return fmt.Errorf("channel must be email, sms or whatsapp")
	}
	if r.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if len(r.Settings) == 0 {
		return fmt.Errorf("settings are required")
	}
	return nil
}

// TestSendRequest fires a test notification through the active adapter of a
// channel without touching any reservation.
type TestSendRequest struct {
	Channel   string `json:"channel" validate:"required,oneof=email sms whatsapp"`
	Recipient string `json:"recipient" validate:"required"`
}

func (r TestSendRequest) Validate() error {
	if !reservationModel.Channel(r.Channel).IsValid() {
		return fmt.Errorf("channel must be email, sms or whatsapp")
	}
	if r.Recipient == "" {
		return fmt.Errorf("recipient is required")
	}
	return nil
}
