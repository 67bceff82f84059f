package create_availability_block

import (
	"github.com/m04kA/PFM-BookingService/internal/service/availability"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	StartDate string  `json:"startDate"` // "2026-08-30"
	EndDate   string  `json:"endDate"`   // "2026-09-05"
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest(barberID int64) *availability.CreateBlockRequest {
	return &availability.CreateBlockRequest{
		BarberID:  barberID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Reason:    r.Reason,
	}
}
