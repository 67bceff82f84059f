package domain

import "time"

// Time format constants
const (
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	TimeFormat     = "15:04"            // HH:MM
	DateTimeFormat = "2006-01-02 15:04" // combined client input
)

// Booking code constants
const (
	CodePrefix      = "PFM-"
	CodeRandomBytes = 3 // 3 bytes -> 6 uppercase hex characters
)

// Default values
const (
	DefaultPartyCount = 1
)

// Business validation constants
const (
	MaxPartyCount               = 10
	MaxNoteLength               = 500
	MaxCancellationReasonLength = 500
)

// History ledger constants
const (
	// HistorySearchLimit максимальное количество записей в результате поиска по истории
	HistorySearchLimit = 100
)

// Blocked slots search window around the requested day.
// Covers bookings spilling over midnight from the previous day and the next day.
const (
	BlockedSlotsWindowBefore = 24 * time.Hour
	BlockedSlotsWindowAfter  = 48 * time.Hour
)

// ActiveStatuses список статусов, занимающих слот
// Используется при проверке пересечений
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
