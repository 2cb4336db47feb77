package notification

import (
	"strings"
	"testing"

	"restaurant-reservation/apperrors"
)

func TestValidateUnknownProvider(t *testing.T) {
	cfg := ProviderConfig{Channel: "email", Provider: "carrier-pigeon"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !apperrors.IsValidation(err) {
		t.Errorf("expected validation error, got %T", err)
	}
}

func TestValidateChannelMismatch(t *testing.T) {
	cfg := ProviderConfig{
		Channel:  "sms",
		Provider: ProviderSendGrid,
		Settings: SettingsMap{"api_key": "k", "from_email": "a@b.co"},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for channel mismatch")
	}
	if !strings.Contains(err.Error(), "does not serve channel") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidateMissingFields(t *testing.T) {
	cfg := ProviderConfig{
		Channel:  "email",
		Provider: ProviderSMTP,
		Settings: SettingsMap{"host": "mail.example.com", "password": "  "},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing fields")
	}
	// Missing fields are reported all at once, sorted.
	want := "from_email, password, port, username"
	if !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not list %q", err.Error(), want)
	}
}

func TestValidateComplete(t *testing.T) {
	cfg := ProviderConfig{
		Channel:  "email",
		Provider: ProviderSMTP,
		Settings: SettingsMap{
			"host":       "mail.example.com",
			"port":       "587",
			"username":   "mailer",
			"password":   "secret",
			"from_email": "no-reply@example.com",
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidateSNSServesBothChannels(t *testing.T) {
	settings := SettingsMap{
		"access_key_id":     "AKIA",
		"secret_access_key": "secret",
		"region":            "eu-west-1",
	}
	for _, channel := range []string{"email", "sms"} {
		cfg := ProviderConfig{Channel: channel, Provider: ProviderSNS, Settings: settings}
		if err := cfg.Validate(); err != nil {
			t.Errorf("sns on %s: %v", channel, err)
		}
	}
	cfg := ProviderConfig{Channel: "whatsapp", Provider: ProviderSNS, Settings: settings}
	if err := cfg.Validate(); err == nil {
		t.Error("sns must not serve whatsapp")
	}
}

func TestValidateSESEmailOnly(t *testing.T) {
	settings := SettingsMap{
		"access_key_id":     "AKIA",
		"secret_access_key": "secret",
		"region":            "eu-west-1",
		"from_email":        "bookings@example.com",
	}
	cfg := ProviderConfig{Channel: "email", Provider: ProviderSES, Settings: settings}
	if err := cfg.Validate(); err != nil {
		t.Errorf("ses on email: %v", err)
	}

	cfg = ProviderConfig{Channel: "sms", Provider: ProviderSES, Settings: settings}
	if err := cfg.Validate(); err == nil {
		t.Error("ses must not serve sms")
	}

	cfg = ProviderConfig{
		Channel:  "email",
		Provider: ProviderSES,
		Settings: SettingsMap{"region": "eu-west-1"},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing settings")
	}
	if !strings.Contains(err.Error(), "access_key_id, from_email, secret_access_key") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestRedacted(t *testing.T) {
	cfg := ProviderConfig{
		Channel:  "email",
		Provider: ProviderSendGrid,
		Settings: SettingsMap{"api_key": "SG.very-secret", "from_email": "no-reply@example.com"},
	}

	out := cfg.Redacted()
	if out.Settings["api_key"] != "********" {
		t.Errorf("secret not redacted: %q", out.Settings["api_key"])
	}
	if out.Settings["from_email"] != "no-reply@example.com" {
		t.Errorf("non-secret changed: %q", out.Settings["from_email"])
	}
	// The original must stay intact.
	if cfg.Settings["api_key"] != "SG.very-secret" {
		t.Error("Redacted mutated the source config")
	}
}
