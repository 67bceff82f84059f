package bookings

import (
	"context"
	"time"

	"github.com/m04kA/PFM-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCode(ctx context.Context, code string) (*domain.BookingDetails, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetails, int64, error)
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
	CountStartingSince(ctx context.Context, since time.Time) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, cancellationReason *string) error
	Delete(ctx context.Context, id int64) error
}

// HistoryRepository интерфейс append-only журнала истории
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.HistoryEntry) error
}

// TransactionManager интерфейс для управления транзакциями
// Мутация и запись снимка в историю выполняются в одной транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
