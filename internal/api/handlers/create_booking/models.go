package create_booking

import (
	"github.com/m04kA/PFM-BookingService/internal/domain"
	createBooking "github.com/m04kA/PFM-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	BarberID    int64   `json:"barberId"`
	ServiceID   int64   `json:"serviceId"`
	Date        string  `json:"date"` // "2026-08-30"
	Time        string  `json:"time"` // "14:30"
	PartyCount  int     `json:"partyCount,omitempty"`
	Note        *string `json:"note,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Не указанный размер группы трактуется как запись на одного
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	partyCount := r.PartyCount
	if partyCount == 0 {
		partyCount = domain.DefaultPartyCount
	}

	return &createBooking.Request{
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		BarberID:    r.BarberID,
		ServiceID:   r.ServiceID,
		Date:        r.Date,
		Time:        r.Time,
		PartyCount:  partyCount,
		Note:        r.Note,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:   resp.ID,
		Code: resp.Code,
	}
}
