package search_history

import (
	"context"

	"github.com/m04kA/PFM-BookingService/internal/service/history"
)

type HistoryService interface {
	Search(ctx context.Context, query *string) ([]*history.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
