package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits   = regexp.MustCompile(`\D`)
	digitsRange = regexp.MustCompile(`^\d{10,15}$`)
)

// IsValidEmail checks the address is syntactically well-formed.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizePhone strips every non-digit character.
func NormalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// IsValidPhone checks the number has 10 to 15 digits after normalization.
func IsValidPhone(phone string) bool {
	return digitsRange.MatchString(NormalizePhone(phone))
}

// ParseSlot combines a 2006-01-02 date and a 15:04 time into a local wall
// clock instant.
func ParseSlot(date, timeOfDay string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot %q %q: %w", date, timeOfDay, err)
	}
	return t, nil
}

// ParseDate parses a 2006-01-02 calendar date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// DateBeforeToday reports whether the calendar date lies strictly before
// today.
func DateBeforeToday(date string) (bool, error) {
	t, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	return t.Before(now.BeginningOfDay()), nil
}

// SlotInPast reports whether the (date, time) pair has already passed.
func SlotInPast(date, timeOfDay string) (bool, error) {
	t, err := ParseSlot(date, timeOfDay)
	if err != nil {
		return false, err
	}
	return t.Before(time.Now()), nil
}

// FormatDate renders 2006-01-02 as e.g. "Mon, Jan 2, 2006" for customer copy.
func FormatDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2, 2006")
}

// FormatTime renders a 24h 15:04 value as e.g. "7:00 PM".
func FormatTime(timeOfDay string) string {
	t, err := time.Parse("15:04", strings.TrimSpace(timeOfDay))
	if err != nil {
		return timeOfDay
	}
	return t.Format("3:04 PM")
}
