package notification

import (
	"context"
	"fmt"
	"net/url"

	"restaurant-reservation/apperrors"
	notificationModel "restaurant-reservation/models/notification"
)

// twilioAdapter delivers SMS through the Twilio messages API.
type twilioAdapter struct {
	accountSID string
	authToken  string
	from       string
}

func (a *twilioAdapter) Provider() string {
	return notificationModel.ProviderTwilio
}

func (a *twilioAdapter) Send(ctx context.Context, msg Message) error {
	form := url.Values{}
	form.Set("To", "+"+msg.Recipient)
	form.Set("From", a.from)
	form.Set("Body", msg.Body)

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", a.accountSID)
	headers := map[string]string{"Authorization": basicAuth(a.accountSID, a.authToken)}
	if err := postForm(ctx, endpoint, headers, form); err != nil {
		return apperrors.Delivery(a.Provider(), err)
	}
	return nil
}

// nexmoAdapter delivers SMS through the Vonage (Nexmo) SMS API.
type nexmoAdapter struct {
	apiKey    string
	apiSecret string
	from      string
}

func (a *nexmoAdapter) Provider() string {
	return notificationModel.ProviderNexmo
}

func (a *nexmoAdapter) Send(ctx context.Context, msg Message) error {
	form := url.Values{}
	form.Set("api_key", a.apiKey)
	form.Set("api_secret", a.apiSecret)
	form.Set("from", a.from)
	form.Set("to", msg.Recipient)
	form.Set("text", msg.Body)

	if err := postForm(ctx, "https://rest.nexmo.com/sms/json", nil, form); err != nil {
		return apperrors.Delivery(a.Provider(), err)
	}
	return nil
}
