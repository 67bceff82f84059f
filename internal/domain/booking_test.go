package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/PFM-BookingService/internal/domain"
)

func TestParseBookingStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled", "done"} {
		status, ok := domain.ParseBookingStatus(s)
		assert.True(t, ok, "status %q should parse", s)
		assert.Equal(t, domain.BookingStatus(s), status)
	}

	for _, s := range []string{"", "Pending", "archived", "completed"} {
		_, ok := domain.ParseBookingStatus(s)
		assert.False(t, ok, "status %q should not parse", s)
	}
}

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    domain.BookingStatus
		to      domain.BookingStatus
		allowed bool
	}{
		{domain.StatusPending, domain.StatusConfirmed, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusPending, domain.StatusDone, true},
		{domain.StatusPending, domain.StatusPending, false},
		{domain.StatusConfirmed, domain.StatusCancelled, true},
		{domain.StatusConfirmed, domain.StatusDone, true},
		{domain.StatusConfirmed, domain.StatusPending, false},
		{domain.StatusConfirmed, domain.StatusConfirmed, false},
		{domain.StatusCancelled, domain.StatusPending, false},
		{domain.StatusCancelled, domain.StatusConfirmed, false},
		{domain.StatusCancelled, domain.StatusDone, false},
		{domain.StatusDone, domain.StatusCancelled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.False(t, domain.StatusConfirmed.IsTerminal())
	assert.True(t, domain.StatusCancelled.IsTerminal())
	assert.True(t, domain.StatusDone.IsTerminal())
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&domain.Booking{Status: domain.StatusPending}).IsActive())
	assert.True(t, (&domain.Booking{Status: domain.StatusConfirmed}).IsActive())
	assert.False(t, (&domain.Booking{Status: domain.StatusCancelled}).IsActive())
	assert.False(t, (&domain.Booking{Status: domain.StatusDone}).IsActive())
}
