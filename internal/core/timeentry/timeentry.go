// Package timeentry contains the pure rules for technician time entries.
// Entries are created and closed server-side as transitions happen; the
// client only reads them, so the logic here is validation and summing.
package timeentry

import (
	"fmt"
	"time"
)

// Entry is a span of technician time booked against a work order. A nil
// EndAt means the entry is still open (service running or paused).
type Entry struct {
	ID           string
	WorkOrderID  string
	TechnicianID string
	StartAt      time.Time
	EndAt        *time.Time
	Notes        string
}

// Open reports whether the entry has not been closed yet.
func (e Entry) Open() bool {
	return e.EndAt == nil
}

// Duration returns the entry length, using now for open entries.
func (e Entry) Duration(now time.Time) time.Duration {
	end := now
	if e.EndAt != nil {
		end = *e.EndAt
	}
	if end.Before(e.StartAt) {
		return 0
	}
	return end.Sub(e.StartAt)
}

// Validate checks the per-entry invariant: EndAt, when present, must not
// precede StartAt.
func Validate(e Entry) error {
	if e.EndAt != nil && e.EndAt.Before(e.StartAt) {
		return fmt.Errorf("time entry %s ends before it starts", e.ID)
	}
	return nil
}

// OpenEntry returns the single open entry among entries, if any. More than
// one open entry violates the lifecycle invariant and is reported as an
// error so the caller can flag inconsistent server data instead of guessing.
func OpenEntry(entries []Entry) (*Entry, error) {
	var open *Entry
	for i := range entries {
		if !entries[i].Open() {
			continue
		}
		if open != nil {
			return nil, fmt.Errorf("work order %s has more than one open time entry", entries[i].WorkOrderID)
		}
		open = &entries[i]
	}
	return open, nil
}

// TotalBooked sums the durations of all entries, using now for open ones.
func TotalBooked(entries []Entry, now time.Time) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += e.Duration(now)
	}
	return total
}
