package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PFM-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PFM-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PFM-BookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
// Единственный владелец записи в таблицу бронирований и журнал истории:
// каждая мутация сопровождается снимком в журнале внутри той же транзакции
type Service struct {
	bookingRepo  BookingRepository
	historyRepo  HistoryRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	historyRepo HistoryRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		historyRepo:  historyRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByCode получает бронирование по публичному коду
// Идемпотентная операция чтения для клиентской проверки статуса
func (s *Service) GetByCode(ctx context.Context, code string) (*models.BookingResponse, error) {
	s.logger.Info("GetByCode: fetching booking code=%s", code)

	details, err := s.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByCode: booking code=%s not found", code)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDetails(details), nil
}

// List получает бронирования с фильтрацией и пагинацией для админки
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, total, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	totalPages := total / int64(filter.Limit)
	if total%int64(filter.Limit) > 0 {
		totalPages++
	}

	s.logger.Info("List: fetched %d of %d bookings (page=%d)", len(items), total, filter.Page)

	return &models.BookingListResponse{
		Items:      models.FromDomainDetailsList(items),
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Stats возвращает счетчики бронирований для административной панели
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	now := s.timeProvider.Now()

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Неделя считается с воскресенья (time.Weekday: Sunday == 0)
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	pending, err := s.bookingRepo.CountByStatus(ctx, domain.StatusPending)
	if err != nil {
		s.logger.Error("Stats: failed to count pending bookings: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	today, err := s.bookingRepo.CountStartingSince(ctx, startOfDay)
	if err != nil {
		s.logger.Error("Stats: failed to count today's bookings: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	week, err := s.bookingRepo.CountStartingSince(ctx, startOfWeek)
	if err != nil {
		s.logger.Error("Stats: failed to count week's bookings: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	month, err := s.bookingRepo.CountStartingSince(ctx, startOfMonth)
	if err != nil {
		s.logger.Error("Stats: failed to count month's bookings: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return &models.StatsResponse{
		Pending: pending,
		Today:   today,
		Week:    week,
		Month:   month,
	}, nil
}

// Transition переводит бронирование в новый статус
// Снимок состояния ПОСЛЕ перехода записывается в историю в той же транзакции.
// Переход в done выполняет archive-and-purge: запись истории становится
// единственным сохранившимся следом бронирования
func (s *Service) Transition(ctx context.Context, id int64, req *models.TransitionRequest) error {
	s.logger.Info("Transition: booking id=%d to status=%s", id, req.Status)

	newStatus, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		s.logger.Warn("Transition: unrecognized status=%q for booking id=%d", req.Status, id)
		return ErrInvalidStatus
	}

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Transition: cancellation reason too long for booking id=%d", id)
		return fmt.Errorf("%w: cancellation reason is too long (max %d characters)",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
		}

		if !booking.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("Transition: %s -> %s not permitted for booking id=%d",
				booking.Status, newStatus, id)
			return ErrCannotTransition
		}

		// Применяем переход к снимку: история фиксирует состояние после изменения
		booking.Status = newStatus
		if newStatus == domain.StatusCancelled {
			booking.CancellationReason = req.CancellationReason
		} else {
			booking.CancellationReason = nil
		}

		if newStatus == domain.StatusDone {
			return s.archiveAndPurge(txCtx, booking)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, newStatus, booking.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
		}

		if err := s.historyRepo.Append(txCtx, domain.Snapshot(booking, domain.ActionStatusChange)); err != nil {
			return fmt.Errorf("%w: Transition - history append: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Transition: booking id=%d successfully moved to status=%s", id, newStatus)
	return nil
}

// Delete удаляет бронирование, зафиксировав предварительный снимок в истории
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		if err := s.historyRepo.Append(txCtx, domain.Snapshot(booking, domain.ActionDeleted)); err != nil {
			return fmt.Errorf("%w: Delete - history append: %v", ErrInternal, err)
		}

		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Delete: booking id=%d deleted, snapshot preserved in history", id)
	return nil
}

// archiveAndPurge записывает финальный снимок бронирования в историю
// и удаляет живую строку. Завершенные бронирования не остаются в живой
// таблице - единственный сохранившийся след остается в журнале истории
func (s *Service) archiveAndPurge(ctx context.Context, booking *domain.Booking) error {
	if err := s.historyRepo.Append(ctx, domain.Snapshot(booking, domain.ActionStatusChange)); err != nil {
		return fmt.Errorf("%w: archiveAndPurge - history append: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.Delete(ctx, booking.ID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: archiveAndPurge - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("archiveAndPurge: booking id=%d (%s) moved to history", booking.ID, booking.Code)
	return nil
}
