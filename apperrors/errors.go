package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ValidationError is returned when a request carries malformed or missing
// fields. The operation is rejected before any record is created or mutated.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError is returned when a write collides with existing state:
// duplicate blocked slot, duplicate username, booking against a blocked slot,
// or an illegal status transition.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError is returned when a record id does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ConfigurationError is returned when a channel adapter has no usable provider
// configuration. The notification is skipped, never retried, and the outcome
// is recorded in the delivery log.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// DeliveryError is returned when a provider send was invoked and failed. It
// never rolls back the state change that triggered the notification.
type DeliveryError struct {
	Provider string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery via %s failed: %v", e.Provider, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// AuthorizationError is returned when an action is attempted without the
// required permission.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func Configuration(format string, args ...interface{}) error {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

func Delivery(provider string, err error) error {
	return &DeliveryError{Provider: provider, Err: err}
}

func Authorization(format string, args ...interface{}) error {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsDelivery(err error) bool {
	var target *DeliveryError
	return errors.As(err, &target)
}

// HTTPStatus maps a domain error to the response status the controllers use.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return fiber.StatusBadRequest
	case IsNotFound(err):
		return fiber.StatusNotFound
	case IsConflict(err):
		return fiber.StatusConflict
	case IsConfiguration(err):
		return fiber.StatusUnprocessableEntity
	default:
		var authErr *AuthorizationError
		if errors.As(err, &authErr) {
			return fiber.StatusForbidden
		}
		return fiber.StatusInternalServerError
	}
}
