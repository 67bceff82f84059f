package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PFM-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/PFM-BookingService/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/PFM-BookingService/internal/infra/storage/catalog"
)

// Service сервис управления периодами недоступности барберов
// Периоды создаются и удаляются только через админку; проверка доступности
// при создании бронирования читает их в usecase create_booking
type Service struct {
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса недоступности
func NewService(availabilityRepo AvailabilityRepository, catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		logger:           logger,
	}
}

// Create создает период недоступности барбера
func (s *Service) Create(ctx context.Context, req *CreateBlockRequest) (*BlockResponse, error) {
	s.logger.Info("Create: blocking barber=%d from %s to %s", req.BarberID, req.StartDate, req.EndDate)

	if req.StartDate == "" || req.EndDate == "" {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	startDate, err := time.ParseInLocation(domain.DateFormat, req.StartDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate: %v", ErrInvalidInput, err)
	}

	endDate, err := time.ParseInLocation(domain.DateFormat, req.EndDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate: %v", ErrInvalidInput, err)
	}

	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	// Барбер должен существовать
	if _, err := s.catalogRepo.GetBarber(ctx, req.BarberID); err != nil {
		if errors.Is(err, catalogRepo.ErrBarberNotFound) {
			s.logger.Warn("Create: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("Create: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: Create - failed to get barber: %v", ErrInternal, err)
	}

	block := &domain.AvailabilityBlock{
		BarberID:  req.BarberID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	}

	created, err := s.availabilityRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("Create: repository error for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: block id=%d created for barber=%d", created.ID, req.BarberID)
	return fromDomainBlock(created), nil
}

// ListByBarber получает все периоды недоступности барбера
func (s *Service) ListByBarber(ctx context.Context, barberID int64) ([]*BlockResponse, error) {
	blocks, err := s.availabilityRepo.ListByBarber(ctx, barberID)
	if err != nil {
		s.logger.Error("ListByBarber: repository error for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: ListByBarber - repository error: %v", ErrInternal, err)
	}

	result := make([]*BlockResponse, len(blocks))
	for i, b := range blocks {
		result[i] = fromDomainBlock(b)
	}

	return result, nil
}

// Delete удаляет период недоступности
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%d not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: block id=%d deleted", id)
	return nil
}
