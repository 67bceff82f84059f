package domain

import "time"

// HistoryAction действие, зафиксированное в журнале истории
type HistoryAction string

const (
	ActionStatusChange HistoryAction = "status_change"
	ActionDeleted      HistoryAction = "deleted"
)

// HistoryEntry is an immutable snapshot of a booking at the moment of an action.
// The ledger is append-only: entries are never updated or deleted, and they
// reference the original booking id by value - the booking itself may no longer
// exist in the live table.
type HistoryEntry struct {
	ID        int64
	BookingID int64

	// Snapshot of the booking as it stood at the moment of the action
	Code               string
	ClientName         string
	ClientPhone        string
	BarberID           int64
	ServiceID          int64
	StartAt            time.Time
	EndAt              time.Time
	PartyCount         int
	Note               *string
	Status             BookingStatus
	CancellationReason *string

	Action   HistoryAction
	ActionAt time.Time
}

// Snapshot builds a history entry from the current state of a booking
func Snapshot(b *Booking, action HistoryAction) *HistoryEntry {
	return &HistoryEntry{
		BookingID:          b.ID,
		Code:               b.Code,
		ClientName:         b.ClientName,
		ClientPhone:        b.ClientPhone,
		BarberID:           b.BarberID,
		ServiceID:          b.ServiceID,
		StartAt:            b.StartAt,
		EndAt:              b.EndAt,
		PartyCount:         b.PartyCount,
		Note:               b.Note,
		Status:             b.Status,
		CancellationReason: b.CancellationReason,
		Action:             action,
	}
}

// HistoryDetails запись истории с присоединенными названиями услуги и барбера
type HistoryDetails struct {
	HistoryEntry
	ServiceTitle *string
	BarberName   *string
}
