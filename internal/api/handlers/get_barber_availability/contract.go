package get_barber_availability

import (
	"context"

	"github.com/m04kA/PFM-BookingService/internal/service/availability"
)

type AvailabilityService interface {
	ListByBarber(ctx context.Context, barberID int64) ([]*availability.BlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
