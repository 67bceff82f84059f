package update_booking_status

import (
	"context"

	"github.com/m04kA/PFM-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Transition(ctx context.Context, id int64, req *models.TransitionRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
