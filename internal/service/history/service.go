package history

import (
	"context"
	"fmt"

	"github.com/m04kA/PFM-BookingService/internal/domain"
)

// Service сервис поиска по журналу истории бронирований
// Журнал append-only: сервис не предоставляет операций изменения или удаления
type Service struct {
	historyRepo HistoryRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса истории
func NewService(historyRepo HistoryRepository, logger Logger) *Service {
	return &Service{
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// Search ищет записи истории по коду, имени или телефону клиента
// Результат отсортирован по времени действия (сначала новые),
// не более domain.HistorySearchLimit записей
func (s *Service) Search(ctx context.Context, query *string) ([]*EntryResponse, error) {
	entries, err := s.historyRepo.Search(ctx, query, domain.HistorySearchLimit)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = fromDomainDetails(e)
	}

	s.logger.Info("Search: found %d history entries", len(result))
	return result, nil
}
