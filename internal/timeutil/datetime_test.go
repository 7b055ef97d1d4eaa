package timeutil

import (
	"testing"
	"time"
)

func TestParseLocalInput(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)

	got, err := ParseLocalInput("2025-10-15T14:30", loc)
	if err != nil {
		t.Fatalf("ParseLocalInput: %v", err)
	}
	want := time.Date(2025, 10, 15, 17, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseLocalInput = %v, want %v", got, want)
	}

	zero, err := ParseLocalInput("", loc)
	if err != nil || !zero.IsZero() {
		t.Errorf("ParseLocalInput(empty) = %v, %v, want zero time", zero, err)
	}

	if _, err := ParseLocalInput("not-a-date", loc); err == nil {
		t.Error("ParseLocalInput(garbage) = nil error, want error")
	}
}

func TestFormatLocalInputRoundTrip(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	utc := time.Date(2025, 10, 15, 17, 30, 0, 0, time.UTC)

	if got := FormatLocalInput(utc, loc); got != "2025-10-15T14:30" {
		t.Errorf("FormatLocalInput = %q, want 2025-10-15T14:30", got)
	}
	if got := FormatLocalInput(time.Time{}, loc); got != "" {
		t.Errorf("FormatLocalInput(zero) = %q, want empty", got)
	}

	back, err := ParseLocalInput(FormatLocalInput(utc, loc), loc)
	if err != nil || !back.Equal(utc) {
		t.Errorf("round trip = %v, %v, want %v", back, err, utc)
	}
}

func TestFormatRFC3339(t *testing.T) {
	if got := FormatRFC3339(time.Time{}); got != "" {
		t.Errorf("FormatRFC3339(zero) = %q, want empty", got)
	}
	utc := time.Date(2025, 10, 15, 17, 30, 0, 0, time.UTC)
	if got := FormatRFC3339(utc); got != "2025-10-15T17:30:00Z" {
		t.Errorf("FormatRFC3339 = %q", got)
	}
}
