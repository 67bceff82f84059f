package history

import (
	"time"

	"github.com/m04kA/PFM-BookingService/internal/domain"
)

// EntryResponse запись истории с названиями услуги и барбера
type EntryResponse struct {
	ID                 int64   `json:"id"`
	BookingID          int64   `json:"bookingId"`
	Code               string  `json:"code"`
	ClientName         string  `json:"clientName"`
	ClientPhone        string  `json:"clientPhone"`
	BarberID           int64   `json:"barberId"`
	BarberName         *string `json:"barberName,omitempty"`
	ServiceID          int64   `json:"serviceId"`
	ServiceTitle       *string `json:"serviceTitle,omitempty"`
	StartAt            string  `json:"startAt"`
	EndAt              string  `json:"endAt"`
	PartyCount         int     `json:"partyCount"`
	Note               *string `json:"note,omitempty"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	Action             string  `json:"action"`
	ActionAt           string  `json:"actionAt"`
}

// fromDomainDetails конвертирует domain модель в response
func fromDomainDetails(d *domain.HistoryDetails) *EntryResponse {
	return &EntryResponse{
		ID:                 d.ID,
		BookingID:          d.BookingID,
		Code:               d.Code,
		ClientName:         d.ClientName,
		ClientPhone:        d.ClientPhone,
		BarberID:           d.BarberID,
		BarberName:         d.BarberName,
		ServiceID:          d.ServiceID,
		ServiceTitle:       d.ServiceTitle,
		StartAt:            d.StartAt.Format(time.RFC3339),
		EndAt:              d.EndAt.Format(time.RFC3339),
		PartyCount:         d.PartyCount,
		Note:               d.Note,
		Status:             string(d.Status),
		CancellationReason: d.CancellationReason,
		Action:             string(d.Action),
		ActionAt:           d.ActionAt.Format(time.RFC3339),
	}
}
