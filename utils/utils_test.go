package utils

import (
	"testing"
	"time"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"guest@example.com", "a.b+c@mail.example.co.uk"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}

	invalid := []string{"", "plain", "no@tld", "two words@example.com", "@example.com"}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("+233 (24) 436-5634"); got != "233244365634" {
		t.Errorf("NormalizePhone = %q", got)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"0244365634", "+233 24 436 5634", "123456789012345"}
	for _, p := range valid {
		if !IsValidPhone(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}

	invalid := []string{"", "12345", "1234567890123456", "call me"}
	for _, p := range invalid {
		if IsValidPhone(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestParseSlot(t *testing.T) {
	got, err := ParseSlot("2026-09-15", "19:30")
	if err != nil {
		t.Fatalf("ParseSlot: %v", err)
	}
	want := time.Date(2026, 9, 15, 19, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ParseSlot = %v, want %v", got, want)
	}

	if _, err := ParseSlot("2026-09-15", "7pm"); err == nil {
		t.Error("expected error for malformed time")
	}
	if _, err := ParseSlot("15/09/2026", "19:30"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestDateBeforeToday(t *testing.T) {
	past, err := DateBeforeToday("2000-01-01")
	if err != nil || !past {
		t.Errorf("DateBeforeToday(2000-01-01) = %v, %v", past, err)
	}

	today := time.Now().Format("2006-01-02")
	past, err = DateBeforeToday(today)
	if err != nil {
		t.Fatalf("DateBeforeToday(today): %v", err)
	}
	if past {
		t.Error("today must not count as past")
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	past, err = DateBeforeToday(tomorrow)
	if err != nil || past {
		t.Errorf("DateBeforeToday(tomorrow) = %v, %v", past, err)
	}
}

func TestSlotInPast(t *testing.T) {
	past, err := SlotInPast("2000-01-01", "12:00")
	if err != nil || !past {
		t.Errorf("SlotInPast(old slot) = %v, %v", past, err)
	}

	future := time.Now().AddDate(0, 0, 1)
	past, err = SlotInPast(future.Format("2006-01-02"), "12:00")
	if err != nil || past {
		t.Errorf("SlotInPast(tomorrow) = %v, %v", past, err)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2026-09-15"); got != "Tue, Sep 15, 2026" {
		t.Errorf("FormatDate = %q", got)
	}
	// Unparseable input falls through unchanged.
	if got := FormatDate("soon"); got != "soon" {
		t.Errorf("FormatDate passthrough = %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	cases := map[string]string{
		"19:00": "7:00 PM",
		"09:05": "9:05 AM",
		"00:30": "12:30 AM",
		"12:00": "12:00 PM",
	}
	for in, want := range cases {
		if got := FormatTime(in); got != want {
			t.Errorf("FormatTime(%q) = %q, want %q", in, got, want)
		}
	}
	if got := FormatTime("late"); got != "late" {
		t.Errorf("FormatTime passthrough = %q", got)
	}
}
