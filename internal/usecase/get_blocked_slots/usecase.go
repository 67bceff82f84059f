package get_blocked_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/PFM-BookingService/internal/domain"
)

// UseCase use case выдачи занятых интервалов для клиентского слот-пикера
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute возвращает занятые интервалы барбера в окне вокруг запрошенной даты.
// Окно [дата-24ч, дата+48ч) захватывает бронирования, переходящие через полночь
// с предыдущего дня и на следующий день.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.BarberID <= 0 {
		return nil, fmt.Errorf("%w: barberId is required", ErrInvalidInput)
	}

	day, err := time.ParseInLocation(domain.DateFormat, req.Date, time.Local)
	if err != nil {
		uc.logger.Warn("GetBlockedSlots: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	from := day.Add(-domain.BlockedSlotsWindowBefore)
	to := day.Add(domain.BlockedSlotsWindowAfter)

	bookings, err := uc.bookingRepo.ListInWindow(ctx, req.BarberID, from, to)
	if err != nil {
		uc.logger.Error("GetBlockedSlots: failed to list bookings for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	slots := make([]BlockedSlot, 0, len(bookings))
	for _, b := range bookings {
		slots = append(slots, BlockedSlot{
			StartAt: b.StartAt,
			EndAt:   b.EndAt,
		})
	}

	uc.logger.Info("GetBlockedSlots: barber=%d, date=%s, %d blocked slots", req.BarberID, req.Date, len(slots))

	return &Response{Slots: slots}, nil
}
