package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"net/url"

	"restaurant-reservation/apperrors"
	notificationModel "restaurant-reservation/models/notification"
)

// smtpAdapter delivers through a plain SMTP relay.
type smtpAdapter struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func (a *smtpAdapter) Provider() string {
	return notificationModel.ProviderSMTP
}

func (a *smtpAdapter) Send(ctx context.Context, msg Message) error {
	addr := a.host + ":" + a.port
	auth := smtp.PlainAuth("", a.username, a.password, a.host)

	payload := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n",
		a.from, msg.Recipient, msg.Subject, msg.Body)

	if err := smtp.SendMail(addr, auth, a.from, []string{msg.Recipient}, []byte(payload)); err != nil {
		return apperrors.Delivery(a.Provider(), err)
	}
	return nil
}

// sendGridAdapter delivers through the SendGrid v3 mail API.
type sendGridAdapter struct {
	apiKey string
	from   string
}

func (a *sendGridAdapter) Provider() string {
	return notificationModel.ProviderSendGrid
}

func (a *sendGridAdapter) Send(ctx context.Context, msg Message) error {
	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{"to": []map[string]string{{"email": msg.Recipient}}},
		},
		"from":    map[string]string{"email": a.from},
		"subject": msg.Subject,
		"content": []map[string]string{
			{"type": "text/plain", "value": msg.Body},
		},
	}

	headers := map[string]string{"Authorization": "Bearer " + a.apiKey}
	if err := postJSON(ctx, "https://api.sendgrid.com/v3/mail/send", headers, payload); err != nil {
		return apperrors.Delivery(a.Provider(), err)
	}
	return nil
}

// mailgunAdapter delivers through the Mailgun messages API.
type mailgunAdapter struct {
	apiKey string
	domain string
	from   string
}

func (a *mailgunAdapter) Provider() string {
	return notificationModel.ProviderMailgun
}

func (a *mailgunAdapter) Send(ctx context.Context, msg Message) error {
	form := url.Values{}
	form.Set("from", a.from)
	form.Set("to", msg.Recipient)
	form.Set("subject", msg.Subject)
	form.Set("text", msg.Body)

	endpoint := fmt.Sprintf("https://api.mailgun.net/v3/%s/messages", a.domain)
	headers := map[string]string{"Authorization": basicAuth("api", a.apiKey)}
	if err := postForm(ctx, endpoint, headers, form); err != nil {
		return apperrors.Delivery(a.Provider(), err)
	}
	return nil
}

// postmarkAdapter delivers through the Postmark transactional email API.
type postmarkAdapter struct {
	serverToken string
	from        string
}

func (a *postmarkAdapter) Provider() string {
	return notificationModel.ProviderPostmark
}

func (a *postmarkAdapter) Send(ctx context.Context, msg Message) error {
	payload := map[string]string{
		"From":     a.from,
		"To":       msg.Recipient,
		"Subject":  msg.Subject,
		"TextBody": msg.Body,
	}

	headers := map[string]string{
		"Accept":                  "application/json",
		"X-Postmark-Server-Token": a.serverToken,
	}
	if err := postJSON(ctx, "https://api.postmarkapp.com/email", headers, payload); err != nil {
		return apperrors.Delivery(a.Provider(), err)
	}
	return nil
}
