package reservation

import (
	"strings"
	"testing"
)

func validCreateRequest() ReservationCreateRequest {
	return ReservationCreateRequest{
		CustomerName: "Ama Mensah",
		Email:        "ama@example.com",
		Phone:        "0244123456",
		Date:         "2026-09-15",
		Time:         "19:00",
		PartySize:    4,
	}
}

func TestCreateRequestValid(t *testing.T) {
	if err := validCreateRequest().Validate(); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
}

func TestCreateRequestRequiresContact(t *testing.T) {
	req := validCreateRequest()
	req.Email = ""
	req.Phone = ""
	err := req.Validate()
	if err == nil || !strings.Contains(err.Error(), "contact channel") {
		t.Errorf("expected contact channel error, got %v", err)
	}
}

func TestCreateRequestPhoneOnly(t *testing.T) {
	req := validCreateRequest()
	req.Email = ""
	if err := req.Validate(); err != nil {
		t.Errorf("phone alone must suffice, got %v", err)
	}
}

func TestCreateRequestRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ReservationCreateRequest)
	}{
		{"missing name", func(r *ReservationCreateRequest) { r.CustomerName = "" }},
		{"missing date", func(r *ReservationCreateRequest) { r.Date = "" }},
		{"malformed date", func(r *ReservationCreateRequest) { r.Date = "15/09/2026" }},
		{"missing time", func(r *ReservationCreateRequest) { r.Time = "" }},
		{"zero party", func(r *ReservationCreateRequest) { r.PartySize = 0 }},
		{"negative party", func(r *ReservationCreateRequest) { r.PartySize = -2 }},
		{"bad email", func(r *ReservationCreateRequest) { r.Email = "not-an-email" }},
		{"short phone", func(r *ReservationCreateRequest) { r.Phone = "12345"; r.Email = "" }},
		{"bad preference", func(r *ReservationCreateRequest) { r.CommunicationPreference = "pigeon" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			if err := req.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUpdateStatusRequest(t *testing.T) {
	if err := (UpdateStatusRequest{Status: "confirmed"}).Validate(); err != nil {
		t.Errorf("confirmed must be accepted: %v", err)
	}
	if err := (UpdateStatusRequest{Status: "declined"}).Validate(); err != nil {
		t.Errorf("declined must be accepted: %v", err)
	}
	if err := (UpdateStatusRequest{Status: "pending"}).Validate(); err == nil {
		t.Error("moving back to pending must be rejected")
	}
	if err := (UpdateStatusRequest{Status: "held"}).Validate(); err == nil {
		t.Error("unknown status must be rejected")
	}
	if err := (UpdateStatusRequest{}).Validate(); err == nil {
		t.Error("empty status must be rejected")
	}
}

func TestMarkAttendanceRequest(t *testing.T) {
	if err := (MarkAttendanceRequest{Attendance: "attended"}).Validate(); err != nil {
		t.Errorf("attended must be accepted: %v", err)
	}
	if err := (MarkAttendanceRequest{Attendance: "no-show"}).Validate(); err != nil {
		t.Errorf("no-show must be accepted: %v", err)
	}
	if err := (MarkAttendanceRequest{Attendance: "late"}).Validate(); err == nil {
		t.Error("unknown attendance must be rejected")
	}
}
