package history

import (
	"context"

	"github.com/m04kA/PFM-BookingService/internal/domain"
)

// HistoryRepository интерфейс репозитория журнала истории
type HistoryRepository interface {
	Search(ctx context.Context, query *string, limit uint64) ([]*domain.HistoryDetails, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
