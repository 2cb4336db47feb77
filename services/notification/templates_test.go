package notification

import (
	"strings"
	"testing"

	reservationModel "restaurant-reservation/models/reservation"
)

func sampleReservation() reservationModel.Reservation {
	return reservationModel.Reservation{
		ID:           "res-1",
		CustomerName: "Ama Mensah",
		Email:        "ama@example.com",
		Phone:        "0244123456",
		Date:         "2026-09-15",
		Time:         "19:00",
		PartySize:    4,
	}
}

func TestTemplateForStatus(t *testing.T) {
	for _, status := range reservationModel.GetAllStatuses() {
		if _, ok := TemplateForStatus(status); !ok {
			t.Errorf("no template for status %s", status)
		}
	}
	if _, ok := TemplateForStatus(reservationModel.Status("cancelled")); ok {
		t.Error("unexpected template for unknown status")
	}
}

func TestRenderSubstitutesEveryPlaceholder(t *testing.T) {
	tpl, _ := TemplateForStatus(reservationModel.StatusConfirmed)
	body := Render(tpl.Body, sampleReservation(), "Rose Garden", "0244 365634")

	for _, want := range []string{"Ama Mensah", "Rose Garden", "Tue, Sep 15, 2026", "7:00 PM", "4"} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered body missing %q: %s", want, body)
		}
	}
	if strings.Contains(body, "{") {
		t.Errorf("unresolved placeholder in body: %s", body)
	}
	if !strings.Contains(body, "CONFIRMED") {
		t.Errorf("confirmed copy missing CONFIRMED: %s", body)
	}
}

func TestRenderDeclinedIncludesPhone(t *testing.T) {
	tpl, _ := TemplateForStatus(reservationModel.StatusDeclined)
	body := Render(tpl.Body, sampleReservation(), "Rose Garden", "0244 365634")

	if !strings.Contains(body, "0244 365634") {
		t.Errorf("declined copy must carry the restaurant phone: %s", body)
	}
}
