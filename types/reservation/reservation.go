package reservation

import (
	"fmt"

	reservationModel "restaurant-reservation/models/reservation"
	"restaurant-reservation/utils"
)

// ReservationCreateRequest is the customer-facing booking form payload.
type ReservationCreateRequest struct {
	CustomerName            string `json:"customer_name" validate:"required,min=1,max=255"`
	Email                   string `json:"email" validate:"omitempty,email"`
	Phone                   string `json:"phone" validate:"omitempty"`
	Date                    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time                    string `json:"time" validate:"required"`
	PartySize               int    `json:"party_size" validate:"required,min=1"`
	SpecialRequests         string `json:"special_requests" validate:"omitempty"`
	CommunicationPreference string `json:"communication_preference" validate:"omitempty,oneof=email sms whatsapp"`
}

// Validate performs the form-level checks before any record is touched.
func (r ReservationCreateRequest) Validate() error {
	if r.CustomerName == "" {
		return fmt.Errorf("customer name is required")
	}
	if r.Date == "" {
		return fmt.Errorf("date is required")
	}
	if r.Time == "" {
		return fmt.Errorf("time is required")
	}
	if r.PartySize < 1 {
		return fmt.Errorf("party size must be a positive number")
	}
	if r.Email == "" && r.Phone == "" {
		return fmt.Errorf("at least one contact channel (email or phone) is required")
	}
	if r.Email != "" && !utils.IsValidEmail(r.Email) {
		return fmt.Errorf("email address is not valid")
	}
	if r.Phone != "" && !utils.IsValidPhone(r.Phone) {
		return fmt.Errorf("phone number must have 10 to 15 digits")
	}
	if r.CommunicationPreference != "" && !reservationModel.Channel(r.CommunicationPreference).IsValid() {
		return fmt.Errorf("communication preference must be email, sms or whatsapp")
	}
	return utils.ValidateStruct(r)
}

// UpdateStatusRequest moves a reservation through its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed declined"`
}

func (r UpdateStatusRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	next := reservationModel.Status(r.Status)
	if !next.IsValid() {
		return fmt.Errorf("status must be one of pending, confirmed, declined")
	}
	if next == reservationModel.StatusPending {
		return fmt.Errorf("a reservation cannot be moved back to pending")
	}
	return nil
}

// MarkAttendanceRequest records whether a confirmed party showed up.
type MarkAttendanceRequest struct {
	Attendance string `json:"attendance" validate:"required,oneof=attended no-show"`
}

func (r MarkAttendanceRequest) Validate() error {
	if r.Attendance == "" {
		return fmt.Errorf("attendance is required")
	}
	if !reservationModel.Attendance(r.Attendance).IsValid() {
		return fmt.Errorf("attendance must be attended or no-show")
	}
	return nil
}
