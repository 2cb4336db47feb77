package notification

import (
	"context"
	"fmt"

	"restaurant-reservation/apperrors"
	notificationModel "restaurant-reservation/models/notification"
)

// whatsAppAdapter delivers through the WhatsApp Business Cloud API.
type whatsAppAdapter struct {
	accessToken   string
	phoneNumberID string
}

func (a *whatsAppAdapter) Provider() string {
	return notificationModel.ProviderWhatsApp
}

func (a *whatsAppAdapter) Send(ctx context.Context, msg Message) error {
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                msg.Recipient,
		"type":              "text",
		"text":              map[string]string{"body": msg.Body},
	}

	endpoint := fmt.Sprintf("https://graph.facebook.com/v18.0/%s/messages", a.phoneNumberID)
	headers := map[string]string{"Authorization": "Bearer " + a.accessToken}
	if err := postJSON(ctx, endpoint, headers, payload); err != nil {
		return apperrors.Delivery(a.Provider(), err)
	}
	return nil
}
