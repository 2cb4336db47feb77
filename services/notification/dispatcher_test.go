package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"restaurant-reservation/apperrors"
	notificationModel "restaurant-reservation/models/notification"
	reservationModel "restaurant-reservation/models/reservation"
)

type fakeConfigSource struct {
	configs map[reservationModel.Channel]*notificationModel.ProviderConfig
	err     error
}

func (f *fakeConfigSource) ActiveConfig(channel reservationModel.Channel) (*notificationModel.ProviderConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.configs[channel], nil
}

type fakeLogSink struct {
	mu      sync.Mutex
	entries []notificationModel.DeliveryLog
}

func (f *fakeLogSink) Record(entry notificationModel.DeliveryLog) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
}

func (f *fakeLogSink) last(t *testing.T) notificationModel.DeliveryLog {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.entries) == 0 {
		t.Fatal("expected a delivery log entry")
	}
	return f.entries[len(f.entries)-1]
}

type fakeAdapter struct {
	provider string
	err      error
	sent     []Message
}

func (f *fakeAdapter) Provider() string { return f.provider }

func (f *fakeAdapter) Send(_ context.Context, msg Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testDispatcher(configs *fakeConfigSource, logs *fakeLogSink, adapter Adapter, factoryErr error) *Dispatcher {
	return &Dispatcher{
		configs: configs,
		logs:    logs,
		factory: func(*notificationModel.ProviderConfig) (Adapter, error) {
			if factoryErr != nil {
				return nil, factoryErr
			}
			return adapter, nil
		},
		restaurantName:  "Rose Garden",
		restaurantPhone: "0244 365634",
		sendTimeout:     time.Second,
	}
}

func emailConfig() *notificationModel.ProviderConfig {
	return &notificationModel.ProviderConfig{
		Channel:  "email",
		Provider: notificationModel.ProviderSendGrid,
	}
}

func TestDispatchSendsViaPreferredChannel(t *testing.T) {
	logs := &fakeLogSink{}
	adapter := &fakeAdapter{provider: "sendgrid"}
	configs := &fakeConfigSource{configs: map[reservationModel.Channel]*notificationModel.ProviderConfig{
		reservationModel.ChannelEmail: emailConfig(),
	}}
	d := testDispatcher(configs, logs, adapter, nil)

	r := sampleReservation()
	tpl, _ := TemplateForStatus(reservationModel.StatusConfirmed)
	d.Dispatch(r, tpl)

	if len(adapter.sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(adapter.sent))
	}
	if adapter.sent[0].Recipient != "ama@example.com" {
		t.Errorf("wrong recipient: %q", adapter.sent[0].Recipient)
	}

	entry := logs.last(t)
	if entry.Status != notificationModel.DeliveryStatusSent {
		t.Errorf("log status = %q, want sent", entry.Status)
	}
	if entry.Provider != "sendgrid" {
		t.Errorf("log provider = %q", entry.Provider)
	}
	if entry.ReservationID != r.ID {
		t.Errorf("log reservation id = %q", entry.ReservationID)
	}
}

func TestDispatchFallsBackToEmail(t *testing.T) {
	logs := &fakeLogSink{}
	adapter := &fakeAdapter{provider: "smtp"}
	configs := &fakeConfigSource{configs: map[reservationModel.Channel]*notificationModel.ProviderConfig{
		reservationModel.ChannelEmail: emailConfig(),
	}}
	d := testDispatcher(configs, logs, adapter, nil)

	// Prefers SMS but has no phone on file.
	r := sampleReservation()
	r.Phone = ""
	r.CommunicationPreference = reservationModel.ChannelSMS

	tpl, _ := TemplateForStatus(reservationModel.StatusConfirmed)
	d.Dispatch(r, tpl)

	if len(adapter.sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(adapter.sent))
	}
	if adapter.sent[0].Channel != reservationModel.ChannelEmail {
		t.Errorf("channel = %s, want email fallback", adapter.sent[0].Channel)
	}
	if logs.last(t).Channel != "email" {
		t.Errorf("log channel = %q", logs.last(t).Channel)
	}
}

func TestDispatchSkipsWhenNoContact(t *testing.T) {
	logs := &fakeLogSink{}
	adapter := &fakeAdapter{provider: "smtp"}
	configs := &fakeConfigSource{}
	d := testDispatcher(configs, logs, adapter, nil)

	r := sampleReservation()
	r.Email = ""
	r.Phone = ""

	tpl, _ := TemplateForStatus(reservationModel.StatusPending)
	d.Dispatch(r, tpl)

	if len(adapter.sent) != 0 {
		t.Fatal("nothing should be sent without a contact")
	}
	entry := logs.last(t)
	if entry.Status != notificationModel.DeliveryStatusSkipped {
		t.Errorf("log status = %q, want skipped", entry.Status)
	}
	if entry.Error != "no contact channel available" {
		t.Errorf("log error = %q", entry.Error)
	}
}

func TestDispatchSkipsWhenUnconfigured(t *testing.T) {
	logs := &fakeLogSink{}
	configs := &fakeConfigSource{} // no configs at all
	d := testDispatcher(configs, logs, &fakeAdapter{}, nil)

	tpl, _ := TemplateForStatus(reservationModel.StatusPending)
	d.Dispatch(sampleReservation(), tpl)

	entry := logs.last(t)
	if entry.Status != notificationModel.DeliveryStatusSkipped {
		t.Errorf("log status = %q, want skipped", entry.Status)
	}
}

func TestDispatchRecordsFailure(t *testing.T) {
	logs := &fakeLogSink{}
	adapter := &fakeAdapter{
		provider: "sendgrid",
		err:      apperrors.Delivery("sendgrid", errors.New("status 500")),
	}
	configs := &fakeConfigSource{configs: map[reservationModel.Channel]*notificationModel.ProviderConfig{
		reservationModel.ChannelEmail: emailConfig(),
	}}
	d := testDispatcher(configs, logs, adapter, nil)

	tpl, _ := TemplateForStatus(reservationModel.StatusDeclined)
	d.Dispatch(sampleReservation(), tpl)

	entry := logs.last(t)
	if entry.Status != notificationModel.DeliveryStatusFailed {
		t.Errorf("log status = %q, want failed", entry.Status)
	}
	if entry.Provider != "sendgrid" {
		t.Errorf("log provider = %q", entry.Provider)
	}
	if entry.Error == "" {
		t.Error("failed entry must carry the error text")
	}
}

func TestDispatchDryRun(t *testing.T) {
	logs := &fakeLogSink{}
	configs := &fakeConfigSource{} // dry run never consults configs
	d := testDispatcher(configs, logs, nil, errors.New("factory must not run"))
	d.dryRun = true

	tpl, _ := TemplateForStatus(reservationModel.StatusConfirmed)
	d.Dispatch(sampleReservation(), tpl)

	entry := logs.last(t)
	if entry.Status != notificationModel.DeliveryStatusSent {
		t.Errorf("log status = %q, want sent", entry.Status)
	}
	if entry.Provider != "dryrun" {
		t.Errorf("log provider = %q, want dryrun", entry.Provider)
	}
}

func TestTestSendReportsConfigurationError(t *testing.T) {
	logs := &fakeLogSink{}
	configs := &fakeConfigSource{}
	d := testDispatcher(configs, logs, &fakeAdapter{}, nil)

	err := d.TestSend(reservationModel.ChannelSMS, "0244123456")
	if err == nil {
		t.Fatal("expected error for unconfigured channel")
	}
	if !apperrors.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
	if logs.last(t).Status != notificationModel.DeliveryStatusSkipped {
		t.Errorf("log status = %q, want skipped", logs.last(t).Status)
	}
}

func TestPickChannel(t *testing.T) {
	r := sampleReservation()
	r.CommunicationPreference = reservationModel.ChannelWhatsApp

	channel, recipient, ok := pickChannel(r)
	if !ok || channel != reservationModel.ChannelWhatsApp || recipient != r.Phone {
		t.Errorf("pickChannel = (%s, %q, %v)", channel, recipient, ok)
	}

	r.Phone = ""
	channel, recipient, ok = pickChannel(r)
	if !ok || channel != reservationModel.ChannelEmail || recipient != r.Email {
		t.Errorf("fallback pickChannel = (%s, %q, %v)", channel, recipient, ok)
	}

	r.Email = ""
	_, _, ok = pickChannel(r)
	if ok {
		t.Error("pickChannel must report no deliverable channel")
	}
}
