package notification

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"restaurant-reservation/apperrors"
)

// Providers recognized per channel. Settings are validated against the
// required-field set at save time, not at send time.
const (
	ProviderSMTP     = "smtp"
	ProviderSendGrid = "sendgrid"
	ProviderMailgun  = "mailgun"
	ProviderPostmark = "postmark"
	ProviderSES      = "ses"
	ProviderSNS      = "sns"
	ProviderTwilio   = "twilio"
	ProviderNexmo    = "nexmo"
	ProviderWhatsApp = "whatsapp_business"
	ProviderDryRun   = "dryrun"
)

// providerChannels maps each provider to the channel it serves. SNS serves
// both email (topic publish) and sms (direct publish), keyed per channel row.
var providerChannels = map[string][]string{
	ProviderSMTP:     {"email"},
	ProviderSendGrid: {"email"},
	ProviderMailgun:  {"email"},
	ProviderPostmark: {"email"},
	ProviderSES:      {"email"},
	ProviderSNS:      {"email", "sms"},
	ProviderTwilio:   {"sms"},
	ProviderNexmo:    {"sms"},
	ProviderWhatsApp: {"whatsapp"},
}

// requiredFields lists the settings keys each provider cannot work without.
var requiredFields = map[string][]string{
	ProviderSMTP:     {"host", "port", "username", "password", "from_email"},
	ProviderSendGrid: {"api_key", "from_email"},
	ProviderMailgun:  {"api_key", "domain", "from_email"},
	ProviderPostmark: {"server_token", "from_email"},
	ProviderSES:      {"access_key_id", "secret_access_key", "region", "from_email"},
	ProviderSNS:      {"access_key_id", "secret_access_key", "region"},
	ProviderTwilio:   {"account_sid", "auth_token", "from_number"},
	ProviderNexmo:    {"api_key", "api_secret", "from_number"},
	ProviderWhatsApp: {"access_token", "phone_number_id"},
}

// SecretFields are encrypted at rest and redacted from API responses.
var SecretFields = map[string]bool{
	"password":          true,
	"api_key":           true,
	"api_secret":        true,
	"server_token":      true,
	"secret_access_key": true,
	"auth_token":        true,
	"access_token":      true,
}

// ProviderConfig is the stored credential set for one channel adapter. At
// most one active config exists per channel.
type ProviderConfig struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	Channel  string `gorm:"type:varchar(10);not null;index" json:"channel"`
	Provider string `gorm:"type:varchar(50);not null" json:"provider"`

	Settings SettingsMap `gorm:"type:json" json:"settings"`

	IsActive  bool   `gorm:"type:bool;default:true" json:"is_active"`
	CreatedBy string `gorm:"type:varchar(255)" json:"created_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the ProviderConfig model
func (ProviderConfig) TableName() string {
	return "provider_configs"
}

// Validate checks the provider is known, serves the declared channel, and
// carries every required settings field. Missing fields are listed so the
// setup screen can show them all at once.
func (pc *ProviderConfig) Validate() error {
	channels, ok := providerChannels[pc.Provider]
	if !ok {
		return apperrors.Validation("unknown provider: %s", pc.Provider)
	}

	served := false
	for _, ch := range channels {
		if ch == pc.Channel {
			served = true
			break
		}
	}
	if !served {
		return apperrors.Validation("provider %s does not serve channel %s", pc.Provider, pc.Channel)
	}

	var missing []string
	for _, field := range requiredFields[pc.Provider] {
		if strings.TrimSpace(pc.Settings[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return apperrors.Validation("provider %s is missing required settings: %s", pc.Provider, strings.Join(missing, ", "))
	}
	return nil
}

// Redacted returns a copy safe to return from the API: secret values are
// replaced with a placeholder.
func (pc *ProviderConfig) Redacted() ProviderConfig {
	out := *pc
	out.Settings = make(SettingsMap, len(pc.Settings))
	for k, v := range pc.Settings {
		if SecretFields[k] {
			out.Settings[k] = "********"
		} else {
			out.Settings[k] = v
		}
	}
	return out
}

// SettingsMap is a custom type to handle JSON serialization for PostgreSQL
type SettingsMap map[string]string

// Scan implements the Scanner interface for database deserialization
func (sm *SettingsMap) Scan(value interface{}) error {
	if value == nil {
		*sm = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, sm)
}

// Value implements the driver Valuer interface for database serialization
func (sm SettingsMap) Value() (driver.Value, error) {
	if sm == nil {
		return nil, nil
	}
	return json.Marshal(sm)
}
