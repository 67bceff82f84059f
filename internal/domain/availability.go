package domain

import "time"

// AvailabilityBlock represents an admin-declared period during which a barber
// must not be offered as bookable, independent of booking-driven occupancy.
// Dates are inclusive on both ends.
type AvailabilityBlock struct {
	ID        int64
	BarberID  int64
	StartDate time.Time
	EndDate   time.Time
	Reason    *string
	CreatedAt time.Time
}

// Covers returns true if the given date falls inside the blocked period
func (b *AvailabilityBlock) Covers(date time.Time) bool {
	day := truncateToDay(date)
	return !day.Before(truncateToDay(b.StartDate)) && !day.After(truncateToDay(b.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
