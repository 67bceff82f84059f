package availability

import (
	"time"

	"github.com/m04kA/PFM-BookingService/internal/domain"
)

// CreateBlockRequest запрос на создание периода недоступности
// Даты включительны с обеих сторон
type CreateBlockRequest struct {
	BarberID  int64
	StartDate string // "2006-01-02"
	EndDate   string // "2006-01-02"
	Reason    *string
}

// BlockResponse период недоступности барбера
type BlockResponse struct {
	ID        int64   `json:"id"`
	BarberID  int64   `json:"barberId"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// fromDomainBlock конвертирует domain модель в response
func fromDomainBlock(b *domain.AvailabilityBlock) *BlockResponse {
	return &BlockResponse{
		ID:        b.ID,
		BarberID:  b.BarberID,
		StartDate: b.StartDate.Format(domain.DateFormat),
		EndDate:   b.EndDate.Format(domain.DateFormat),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
