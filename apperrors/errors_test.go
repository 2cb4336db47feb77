package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), 400},
		{NotFound("missing"), 404},
		{Conflict("taken"), 409},
		{Configuration("unset"), 422},
		{Authorization("forbidden"), 403},
		{Delivery("smtp", errors.New("refused")), 500},
		{errors.New("plain"), 500},
	}

	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestClassifiersSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("saving: %w", Conflict("slot already blocked"))
	if !IsConflict(wrapped) {
		t.Error("IsConflict must see through wrapping")
	}
	if IsValidation(wrapped) {
		t.Error("IsValidation must not match a conflict")
	}
	if HTTPStatus(wrapped) != 409 {
		t.Errorf("wrapped conflict maps to %d", HTTPStatus(wrapped))
	}
}

func TestDeliveryErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Delivery("twilio", cause)

	if !IsDelivery(err) {
		t.Error("IsDelivery failed")
	}
	if !errors.Is(err, cause) {
		t.Error("Delivery must unwrap to its cause")
	}

	var d *DeliveryError
	if !errors.As(err, &d) {
		t.Fatal("errors.As failed")
	}
	if d.Provider != "twilio" {
		t.Errorf("provider = %q", d.Provider)
	}
}
