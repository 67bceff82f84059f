package availability

import (
	"context"

	"github.com/m04kA/PFM-BookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория периодов недоступности
type AvailabilityRepository interface {
	Create(ctx context.Context, block *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error)
	ListByBarber(ctx context.Context, barberID int64) ([]*domain.AvailabilityBlock, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogRepository интерфейс read-only каталога барберов
type CatalogRepository interface {
	GetBarber(ctx context.Context, id int64) (*domain.Barber, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
