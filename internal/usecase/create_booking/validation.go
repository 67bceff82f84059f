package create_booking

import (
	"fmt"

	"github.com/m04kA/PFM-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Все поля, кроме заметки, обязательны
func validateRequest(req *Request) error {
	if req.ClientName == "" {
		return fmt.Errorf("%w: clientName is required", ErrMissingFields)
	}

	if req.ClientPhone == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrMissingFields)
	}

	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberId is required", ErrMissingFields)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId is required", ErrMissingFields)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrMissingFields)
	}

	if req.Time == "" {
		return fmt.Errorf("%w: time is required", ErrMissingFields)
	}

	if req.PartyCount < 1 || req.PartyCount > domain.MaxPartyCount {
		return fmt.Errorf("%w: partyCount must be between 1 and %d", ErrInvalidInput, domain.MaxPartyCount)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is too long (max %d characters)", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}
