// Package timeutil converts between the zone-less "YYYY-MM-DDTHH:MM" strings
// users type into schedule fields and the RFC3339 UTC instants the API
// expects. Input is interpreted in the operator's local zone.
package timeutil

import (
	"fmt"
	"time"
)

// InputLayout is the datetime-local layout without zone or seconds.
const InputLayout = "2006-01-02T15:04"

// ParseLocalInput interprets a datetime-local string in loc and returns the
// instant in UTC. Empty input returns the zero time with no error, matching
// an untouched optional field.
func ParseLocalInput(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(InputLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q (expected YYYY-MM-DDTHH:MM): %w", s, err)
	}
	return t.UTC(), nil
}

// FormatLocalInput renders a UTC instant as a datetime-local string in loc.
// The zero time renders as the empty string.
func FormatLocalInput(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(InputLayout)
}

// FormatRFC3339 renders an instant for the wire, empty for the zero time.
func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
