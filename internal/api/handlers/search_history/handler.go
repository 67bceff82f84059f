package search_history

import (
	"net/http"

	"github.com/m04kA/PFM-BookingService/internal/api/handlers"
	"github.com/m04kA/PFM-BookingService/internal/service/history"
)

type Handler struct {
	service HistoryService
	logger  Logger
}

func NewHandler(service HistoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/admin/history
// Query params: q (опционально) - поиск по коду, имени или телефону клиента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var query *string
	if q := r.URL.Query().Get("q"); q != "" {
		query = &q
	}

	entries, err := h.service.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("GET /admin/history - Failed to search history: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/history - Retrieved %d history entries", len(entries))
	handlers.RespondJSON(w, http.StatusOK, SearchHistoryResponse{Items: entries})
}

// SearchHistoryResponse HTTP response model
type SearchHistoryResponse struct {
	Items []*history.EntryResponse `json:"items"`
}
