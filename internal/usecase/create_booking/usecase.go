package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PFM-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PFM-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/PFM-BookingService/internal/infra/storage/catalog"
)

// maxCodeAttempts максимальное количество попыток сгенерировать уникальный код
const maxCodeAttempts = 5

// UseCase use case создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	txManager        TransactionManager
	codeGen          CodeGenerator
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		txManager:        txManager,
		codeGen:          &RandomCodeGenerator{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции
// с блокировкой пересекающихся строк (FOR UPDATE) - конкурирующие создания
// на одного барбера не могут обе пройти проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: barber=%d, service=%d, date=%s, time=%s, party=%d",
		req.BarberID, req.ServiceID, req.Date, req.Time, req.PartyCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Услуга должна существовать и быть активной
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Барбер должен существовать и быть активным
	barber, err := uc.catalogRepo.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBarberNotFound) {
			uc.logger.Warn("CreateBooking: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if !barber.IsActive {
		uc.logger.Warn("CreateBooking: barber id=%d is inactive", req.BarberID)
		return nil, ErrBarberNotFound
	}

	// 4. Вычисляем интервал слота
	// Эффективная длительность = длительность услуги * размер группы
	slot, err := domain.ComputeSlot(req.Date, req.Time, service.DurationMin*req.PartyCount)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot computation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.Booking

	// 5. Проверка доступности и вставка - атомарно, в сериализуемой транзакции
	createTx := func(txCtx context.Context) error {
		// 5.1. Пересечения с активными бронированиями барбера (с блокировкой строк)
		overlapping, err := uc.bookingRepo.ListOverlapping(txCtx, req.BarberID, slot)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to list overlapping bookings: %w", ErrInternal, err)
		}

		for _, b := range overlapping {
			if b.IsActive() && b.Slot().Overlaps(slot) {
				uc.logger.Warn("CreateBooking: slot conflict with booking id=%d (%s)", b.ID, b.Code)
				return ErrSlotNotAvailable
			}
		}

		// 5.2. Периоды недоступности барбера, накрывающие дату бронирования
		blocks, err := uc.availabilityRepo.ListCovering(txCtx, req.BarberID, slot.StartAt)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list availability blocks: %v", err)
			return fmt.Errorf("%w: failed to list availability blocks: %w", ErrInternal, err)
		}

		if len(blocks) > 0 {
			uc.logger.Warn("CreateBooking: barber id=%d is blocked on %s (block id=%d)",
				req.BarberID, req.Date, blocks[0].ID)
			return ErrBarberUnavailable
		}

		// 5.3. Генерируем уникальный код, повторяя при маловероятной коллизии
		code, err := uc.generateUniqueCode(txCtx)
		if err != nil {
			return err
		}

		// 5.4. Создаем бронирование со статусом pending
		booking := &domain.Booking{
			Code:        code,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			BarberID:    req.BarberID,
			ServiceID:   req.ServiceID,
			StartAt:     slot.StartAt,
			EndAt:       slot.EndAt,
			PartyCount:  req.PartyCount,
			Note:        req.Note,
			Status:      domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Гонка между CodeExists и вставкой: уникальный индекс по code
			// сработал уже на вставке. Нарушение уникальности абортирует
			// транзакцию, поэтому повторяем её целиком с новым кодом
			if errors.Is(err, bookingRepo.ErrDuplicateCode) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	}

	for attempt := 0; ; attempt++ {
		err = uc.txManager.DoSerializable(ctx, createTx)
		if err == nil || !errors.Is(err, bookingRepo.ErrDuplicateCode) {
			break
		}
		if attempt+1 >= maxCodeAttempts {
			uc.logger.Error("CreateBooking: code collisions exhausted %d insert attempts", maxCodeAttempts)
			return nil, fmt.Errorf("%w: failed to generate unique code after %d attempts", ErrInternal, maxCodeAttempts)
		}
		uc.logger.Warn("CreateBooking: code collision at insert, retrying with a new code")
	}

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, code=%s", result.ID, result.Code)

	return &Response{
		ID:   result.ID,
		Code: result.Code,
	}, nil
}

// generateUniqueCode генерирует код бронирования, не занятый существующей записью
func (uc *UseCase) generateUniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := uc.codeGen.Generate()

		exists, err := uc.bookingRepo.CodeExists(ctx, code)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check code uniqueness: %v", err)
			return "", fmt.Errorf("%w: failed to check code uniqueness: %w", ErrInternal, err)
		}

		if !exists {
			return code, nil
		}

		uc.logger.Warn("CreateBooking: code collision on %s, regenerating", code)
	}

	return "", fmt.Errorf("%w: failed to generate unique code after %d attempts", ErrInternal, maxCodeAttempts)
}
