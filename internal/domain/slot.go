package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSlotInput возвращается, когда дата, время или длительность слота некорректны
var ErrInvalidSlotInput = errors.New("domain: invalid slot input")

// TimeSlot represents a half-open time interval [StartAt, EndAt)
// during which a barber is occupied
type TimeSlot struct {
	StartAt time.Time
	EndAt   time.Time
}

// Overlaps returns true if two half-open intervals share at least one instant.
// Strict comparison: intervals that merely touch (one ends exactly where the
// other starts) do NOT overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.StartAt.Before(other.EndAt) && s.EndAt.After(other.StartAt)
}

// Duration returns the length of the slot
func (s TimeSlot) Duration() time.Duration {
	return s.EndAt.Sub(s.StartAt)
}

// ComputeSlot computes the absolute time interval for a booking.
// The client-supplied date and time-of-day are interpreted in the server's
// local time zone (the business's local time, not UTC). durationMin is the
// effective duration: service base duration multiplied by party count.
func ComputeSlot(date string, timeOfDay string, durationMin int) (TimeSlot, error) {
	if durationMin <= 0 {
		return TimeSlot{}, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidSlotInput, durationMin)
	}

	startAt, err := time.ParseInLocation(DateTimeFormat, date+" "+timeOfDay, time.Local)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: failed to parse date/time %q %q: %v", ErrInvalidSlotInput, date, timeOfDay, err)
	}

	return TimeSlot{
		StartAt: startAt,
		EndAt:   startAt.Add(time.Duration(durationMin) * time.Minute),
	}, nil
}
