package reservation

import (
	"sync"
	"testing"
	"time"

	"restaurant-reservation/apperrors"
	"restaurant-reservation/events"
	reservationModel "restaurant-reservation/models/reservation"
	reservationTypes "restaurant-reservation/types/reservation"
)

type recordingSubscriber struct {
	mu     sync.Mutex
	events []events.ReservationEvent
}

func (s *recordingSubscriber) Handle(event events.ReservationEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSubscriber) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func validRequest() reservationTypes.ReservationCreateRequest {
	return reservationTypes.ReservationCreateRequest{
		CustomerName: "Ama Mensah",
		Email:        "ama@example.com",
		Phone:        "0244123456",
		Date:         futureDate(),
		Time:         "19:00",
		PartySize:    4,
	}
}

func neverBlocked(string, string) (bool, error) { return false, nil }
func alwaysBlocked(string, string) (bool, error) { return true, nil }

func TestCreateRejectsBlockedSlot(t *testing.T) {
	bus := events.NewBus()
	sub := &recordingSubscriber{}
	bus.Subscribe(sub)
	svc := &Service{bus: bus, blocked: alwaysBlocked}

	created, err := svc.Create(validRequest())
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict for blocked slot, got %v", err)
	}
	if created != nil {
		t.Error("no reservation may be returned for a blocked slot")
	}

	// A rejected booking publishes nothing.
	time.Sleep(50 * time.Millisecond)
	if sub.count() != 0 {
		t.Errorf("expected 0 events, got %d", sub.count())
	}
}

func TestCreateRejectsPastDate(t *testing.T) {
	svc := &Service{blocked: neverBlocked}

	req := validRequest()
	req.Date = "2000-01-01"
	if _, err := svc.Create(req); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for past date, got %v", err)
	}
}

func TestCreateRejectsMalformedTime(t *testing.T) {
	svc := &Service{blocked: neverBlocked}

	req := validRequest()
	req.Time = "7pm"
	if _, err := svc.Create(req); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for malformed time, got %v", err)
	}
}

func TestCreateRejectsMissingContact(t *testing.T) {
	svc := &Service{blocked: neverBlocked}

	req := validRequest()
	req.Email = ""
	req.Phone = ""
	if _, err := svc.Create(req); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error without contact, got %v", err)
	}
}

func TestCheckTransition(t *testing.T) {
	cases := []struct {
		current  reservationModel.Status
		next     reservationModel.Status
		noop     bool
		conflict bool
	}{
		{reservationModel.StatusPending, reservationModel.StatusConfirmed, false, false},
		{reservationModel.StatusPending, reservationModel.StatusDeclined, false, false},
		{reservationModel.StatusConfirmed, reservationModel.StatusDeclined, false, false},
		{reservationModel.StatusPending, reservationModel.StatusPending, true, false},
		{reservationModel.StatusConfirmed, reservationModel.StatusConfirmed, true, false},
		{reservationModel.StatusConfirmed, reservationModel.StatusPending, false, true},
		{reservationModel.StatusDeclined, reservationModel.StatusConfirmed, false, true},
	}

	for _, tc := range cases {
		noop, err := checkTransition(tc.current, tc.next)
		if tc.conflict {
			if !apperrors.IsConflict(err) {
				t.Errorf("%s -> %s: expected conflict, got %v", tc.current, tc.next, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tc.current, tc.next, err)
		}
		if noop != tc.noop {
			t.Errorf("%s -> %s: noop = %v, want %v", tc.current, tc.next, noop, tc.noop)
		}
	}

	if _, err := checkTransition(reservationModel.StatusPending, "held"); !apperrors.IsValidation(err) {
		t.Errorf("unknown status: expected validation error, got %v", err)
	}
}

func TestSetStatusRejectsUnknownStatusBeforeLookup(t *testing.T) {
	svc := &Service{}
	if _, err := svc.SetStatus("res-1", "held", "kofi"); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCheckAttendance(t *testing.T) {
	pastSlot := func(status reservationModel.Status) *reservationModel.Reservation {
		return &reservationModel.Reservation{
			Status: status,
			Date:   "2000-01-01",
			Time:   "19:00",
		}
	}

	// Pending and declined reservations cannot carry attendance.
	if err := checkAttendance(pastSlot(reservationModel.StatusPending), reservationModel.AttendanceAttended); !apperrors.IsConflict(err) {
		t.Errorf("pending: expected conflict, got %v", err)
	}
	if err := checkAttendance(pastSlot(reservationModel.StatusDeclined), reservationModel.AttendanceNoShow); !apperrors.IsConflict(err) {
		t.Errorf("declined: expected conflict, got %v", err)
	}

	// Attendance is terminal.
	marked := pastSlot(reservationModel.StatusConfirmed)
	attended := reservationModel.AttendanceAttended
	marked.Attendance = &attended
	if err := checkAttendance(marked, reservationModel.AttendanceNoShow); !apperrors.IsConflict(err) {
		t.Errorf("second write: expected conflict, got %v", err)
	}

	// The slot must have passed.
	upcoming := &reservationModel.Reservation{
		Status: reservationModel.StatusConfirmed,
		Date:   futureDate(),
		Time:   "19:00",
	}
	if err := checkAttendance(upcoming, reservationModel.AttendanceAttended); !apperrors.IsConflict(err) {
		t.Errorf("future slot: expected conflict, got %v", err)
	}

	// Confirmed, unmarked, slot passed: allowed.
	if err := checkAttendance(pastSlot(reservationModel.StatusConfirmed), reservationModel.AttendanceNoShow); err != nil {
		t.Errorf("valid write: unexpected error %v", err)
	}

	if err := checkAttendance(pastSlot(reservationModel.StatusConfirmed), "late"); !apperrors.IsValidation(err) {
		t.Errorf("unknown attendance: expected validation error, got %v", err)
	}
}

func TestSetAttendanceRejectsUnknownValueBeforeLookup(t *testing.T) {
	svc := &Service{}
	if _, err := svc.SetAttendance("res-1", "late", "kofi"); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
