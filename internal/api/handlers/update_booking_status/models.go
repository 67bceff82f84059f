package update_booking_status

import (
	"github.com/m04kA/PFM-BookingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest() *models.TransitionRequest {
	return &models.TransitionRequest{
		Status:             r.Status,
		CancellationReason: r.CancellationReason,
	}
}
