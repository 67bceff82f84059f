package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusDone      BookingStatus = "done"
)

// ParseBookingStatus converts a raw string into a BookingStatus.
// Returns false if the string is not one of the known statuses.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusDone:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// allowedTransitions defines the booking status machine.
// done and cancelled are terminal: nothing transitions out of them
// (done rows are purged from the live table anyway).
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusDone},
	StatusConfirmed: {StatusCancelled, StatusDone},
}

// CanTransitionTo returns true if the transition from s to target is permitted
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no transition is permitted out of s
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Booking represents a client booking for a barber's time slot
type Booking struct {
	ID          int64
	Code        string // unique shareable identifier, "PFM-" + 6 hex chars
	ClientName  string
	ClientPhone string
	BarberID    int64
	ServiceID   int64
	StartAt     time.Time
	EndAt       time.Time
	PartyCount  int
	Note        *string
	Status      BookingStatus

	CancellationReason *string

	CreatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
// (cancelled and done bookings do not block other bookings)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Slot returns the half-open time interval occupied by the booking
func (b *Booking) Slot() TimeSlot {
	return TimeSlot{StartAt: b.StartAt, EndAt: b.EndAt}
}

// BookingDetails бронирование с присоединенными названиями услуги и барбера
type BookingDetails struct {
	Booking
	ServiceTitle string
	BarberName   string
}

// BookingsFilter фильтр для административного списка бронирований
type BookingsFilter struct {
	Date     *time.Time     // Бронирования, начинающиеся в этот день (опционально)
	Status   *BookingStatus // Фильтр по статусу (опционально)
	BarberID *int64         // Фильтр по барберу (опционально)
	Query    *string        // Поиск по коду, имени или телефону клиента (опционально)
	Page     int
	Limit    int
}

// BookingStats счетчики для административной панели
type BookingStats struct {
	Pending int64
	Today   int64
	Week    int64
	Month   int64
}
