package create_availability_block

import (
	"context"

	"github.com/m04kA/PFM-BookingService/internal/service/availability"
)

type AvailabilityService interface {
	Create(ctx context.Context, req *availability.CreateBlockRequest) (*availability.BlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
