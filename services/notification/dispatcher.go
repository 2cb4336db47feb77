package notification

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"restaurant-reservation/apperrors"
	"restaurant-reservation/events"
	"restaurant-reservation/logger"
	"restaurant-reservation/metrics"
	notificationModel "restaurant-reservation/models/notification"
	reservationModel "restaurant-reservation/models/reservation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConfigSource looks up the active provider configuration for a channel.
// A (nil, nil) result means the channel has no provider configured.
type ConfigSource interface {
	ActiveConfig(channel reservationModel.Channel) (*notificationModel.ProviderConfig, error)
}

// LogSink records delivery-log entries.
type LogSink interface {
	Record(entry notificationModel.DeliveryLog)
}

type gormConfigSource struct {
	db *gorm.DB
}

func (s *gormConfigSource) ActiveConfig(channel reservationModel.Channel) (*notificationModel.ProviderConfig, error) {
	var cfg notificationModel.ProviderConfig
	err := s.db.
		Where("channel = ? AND is_active = ?", channel.String(), true).
		Order("updated_at DESC").
		First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// Dispatcher turns reservation events into outbound notifications. It runs
// as an event-bus subscriber, so it can never block or roll back the state
// change that triggered it; its only durable output is the delivery log.
type Dispatcher struct {
	configs ConfigSource
	logs    LogSink
	factory AdapterFactory

	restaurantName  string
	restaurantPhone string
	dryRun          bool
	sendTimeout     time.Duration
}

// NewDispatcher builds the production dispatcher.
func NewDispatcher(db *gorm.DB, logs LogSink) *Dispatcher {
	return &Dispatcher{
		configs:         &gormConfigSource{db: db},
		logs:            logs,
		factory:         BuildAdapter,
		restaurantName:  envOrDefault("RESTAURANT_NAME", "Rose Garden"),
		restaurantPhone: envOrDefault("RESTAURANT_PHONE", "0244 365634"),
		dryRun:          os.Getenv("NOTIFY_DRY_RUN") == "true",
		sendTimeout:     15 * time.Second,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Handle implements events.Subscriber.
func (d *Dispatcher) Handle(event events.ReservationEvent) {
	var status reservationModel.Status
	switch event.Type {
	case events.TypeReservationCreated:
		status = reservationModel.StatusPending
	case events.TypeStatusChanged:
		status = event.Reservation.Status
	default:
		return
	}

	tpl, ok := TemplateForStatus(status)
	if !ok {
		return
	}

	d.Dispatch(event.Reservation, tpl)
}

// Dispatch renders the template, picks exactly one channel and sends
// through its adapter. Every path ends in one delivery-log entry.
func (d *Dispatcher) Dispatch(r reservationModel.Reservation, tpl Template) {
	channel, recipient, ok := pickChannel(r)

	msg := Message{
		ReservationID: r.ID,
		Channel:       channel,
		Recipient:     recipient,
		Subject:       Render(tpl.Subject, r, d.restaurantName, d.restaurantPhone),
		Body:          Render(tpl.Body, r, d.restaurantName, d.restaurantPhone),
	}

	if !ok {
		d.record(msg, "", notificationModel.DeliveryStatusSkipped, "no contact channel available")
		return
	}

	adapter, err := d.adapterFor(channel)
	if err != nil {
		logger.Warning(fmt.Sprintf("Notification for %s skipped: %v", r.ID, err))
		d.record(msg, "", notificationModel.DeliveryStatusSkipped, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := adapter.Send(ctx, msg); err != nil {
		logger.Error(fmt.Sprintf("Notification for %s failed via %s", r.ID, adapter.Provider()), err)
		d.record(msg, adapter.Provider(), notificationModel.DeliveryStatusFailed, err.Error())
		return
	}

	d.record(msg, adapter.Provider(), notificationModel.DeliveryStatusSent, "")
}

// TestSend pushes a fixed probe message through the active adapter of a
// channel so staff can verify a configuration from the setup screen.
func (d *Dispatcher) TestSend(channel reservationModel.Channel, recipient string) error {
	msg := Message{
		Channel:   channel,
		Recipient: recipient,
		Subject:   d.restaurantName + " test notification",
		Body:      fmt.Sprintf("This is a test notification from %s. If you received it, the %s channel is configured correctly.", d.restaurantName, channel),
	}

	adapter, err := d.adapterFor(channel)
	if err != nil {
		d.record(msg, "", notificationModel.DeliveryStatusSkipped, err.Error())
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := adapter.Send(ctx, msg); err != nil {
		d.record(msg, adapter.Provider(), notificationModel.DeliveryStatusFailed, err.Error())
		return err
	}

	d.record(msg, adapter.Provider(), notificationModel.DeliveryStatusSent, "")
	return nil
}

func (d *Dispatcher) adapterFor(channel reservationModel.Channel) (Adapter, error) {
	if d.dryRun {
		return dryRunAdapter{}, nil
	}

	cfg, err := d.configs.ActiveConfig(channel)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, apperrors.Configuration("no %s provider configured", channel)
	}
	return d.factory(cfg)
}

func (d *Dispatcher) record(msg Message, provider, status, errText string) {
	metrics.Notifications.WithLabelValues(msg.Channel.String(), status).Inc()
	d.logs.Record(notificationModel.DeliveryLog{
		ID:            uuid.NewString(),
		ReservationID: msg.ReservationID,
		Channel:       msg.Channel.String(),
		Provider:      provider,
		Recipient:     msg.Recipient,
		Subject:       msg.Subject,
		Body:          msg.Body,
		Status:        status,
		Error:         errText,
	})
}

// pickChannel selects the customer's preferred channel, falling back to
// email when the preferred channel's contact field is missing. The third
// return value is false when no channel is deliverable at all.
func pickChannel(r reservationModel.Reservation) (reservationModel.Channel, string, bool) {
	preferred := r.CommunicationPreference
	if !preferred.IsValid() {
		preferred = reservationModel.ChannelEmail
	}

	if contact := r.ContactFor(preferred); contact != "" {
		return preferred, contact, true
	}
	if contact := r.ContactFor(reservationModel.ChannelEmail); contact != "" {
		return reservationModel.ChannelEmail, contact, true
	}
	return preferred, "", false
}
