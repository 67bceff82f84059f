package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/PFM-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListOverlapping(ctx context.Context, barberID int64, slot domain.TimeSlot) ([]*domain.Booking, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

// AvailabilityRepository интерфейс репозитория периодов недоступности
type AvailabilityRepository interface {
	ListCovering(ctx context.Context, barberID int64, date time.Time) ([]*domain.AvailabilityBlock, error)
}

// CatalogRepository интерфейс read-only каталога услуг и барберов
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetBarber(ctx context.Context, id int64) (*domain.Barber, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CodeGenerator интерфейс генератора публичных кодов бронирований (для тестирования)
type CodeGenerator interface {
	Generate() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
