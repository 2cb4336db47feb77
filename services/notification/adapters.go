package notification

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"restaurant-reservation/apperrors"
	notificationModel "restaurant-reservation/models/notification"
	reservationModel "restaurant-reservation/models/reservation"
	"restaurant-reservation/utils"

	"github.com/sony/gobreaker"
)

// Message is one rendered notification bound for one recipient.
type Message struct {
	ReservationID string
	Channel       reservationModel.Channel
	Recipient     string
	Subject       string
	Body          string
}

// Adapter delivers a rendered message through one provider. Implementations
// are mutually substitutable within a channel.
type Adapter interface {
	Provider() string
	Send(ctx context.Context, msg Message) error
}

// AdapterFactory builds an adapter from a stored provider configuration.
type AdapterFactory func(cfg *notificationModel.ProviderConfig) (Adapter, error)

// All provider HTTP calls share one breaker: a vendor outage should stop
// hammering the API, and notification failures never block reservation
// state anyway.
var httpBreaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
	Name:     "notification-providers",
	Interval: 60 * time.Second,
	Timeout:  30 * time.Second,
	ReadyToTrip: func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 5
	},
})

func doRequest(ctx context.Context, method, rawURL string, headers map[string]string, contentType string, body []byte) error {
	_, err := httpBreaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
			return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
		}
		return nil, nil
	})
	return err
}

func postJSON(ctx context.Context, rawURL string, headers map[string]string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return doRequest(ctx, http.MethodPost, rawURL, headers, "application/json", body)
}

func postForm(ctx context.Context, rawURL string, headers map[string]string, form url.Values) error {
	return doRequest(ctx, http.MethodPost, rawURL, headers, "application/x-www-form-urlencoded", []byte(form.Encode()))
}

func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// decryptSettings resolves the at-rest encrypted secret fields back to
// plaintext for the duration of a send.
func decryptSettings(in notificationModel.SettingsMap) (map[string]string, error) {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if notificationModel.SecretFields[k] {
			plain, err := utils.DecryptData(v)
			if err != nil {
				return nil, apperrors.Configuration("cannot decrypt provider setting %s: %v", k, err)
			}
			out[k] = plain
		} else {
			out[k] = v
		}
	}
	return out, nil
}

// BuildAdapter is the production AdapterFactory.
func BuildAdapter(cfg *notificationModel.ProviderConfig) (Adapter, error) {
	settings, err := decryptSettings(cfg.Settings)
	if err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case notificationModel.ProviderSMTP:
		return &smtpAdapter{
			host:     settings["host"],
			port:     settings["port"],
			username: settings["username"],
			password: settings["password"],
			from:     settings["from_email"],
		}, nil
	case notificationModel.ProviderSendGrid:
		return &sendGridAdapter{apiKey: settings["api_key"], from: settings["from_email"]}, nil
	case notificationModel.ProviderMailgun:
		return &mailgunAdapter{apiKey: settings["api_key"], domain: settings["domain"], from: settings["from_email"]}, nil
	case notificationModel.ProviderPostmark:
		return &postmarkAdapter{serverToken: settings["server_token"], from: settings["from_email"]}, nil
	case notificationModel.ProviderTwilio:
		return &twilioAdapter{accountSID: settings["account_sid"], authToken: settings["auth_token"], from: settings["from_number"]}, nil
	case notificationModel.ProviderNexmo:
		return &nexmoAdapter{apiKey: settings["api_key"], apiSecret: settings["api_secret"], from: settings["from_number"]}, nil
	case notificationModel.ProviderWhatsApp:
		return &whatsAppAdapter{accessToken: settings["access_token"], phoneNumberID: settings["phone_number_id"]}, nil
	case notificationModel.ProviderSES:
		return newSESAdapter(settings)
	case notificationModel.ProviderSNS:
		return newSNSAdapter(settings, reservationModel.Channel(cfg.Channel))
	default:
		return nil, apperrors.Configuration("no adapter available for provider %s", cfg.Provider)
	}
}
