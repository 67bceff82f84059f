package delete_availability_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PFM-BookingService/internal/api/handlers"
	"github.com/m04kA/PFM-BookingService/internal/service/availability"
)

const (
	msgInvalidBlockID = "некорректный ID периода недоступности"
	msgNotFound       = "период недоступности не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/admin/availability/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blockIDStr := vars["blockId"]

	blockID, err := strconv.ParseInt(blockIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/availability/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	err = h.service.Delete(r.Context(), blockID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrBlockNotFound):
			h.logger.Warn("DELETE /admin/availability/{id} - Block not found: block_id=%d", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/availability/{id} - Failed to delete block: block_id=%d, error=%v",
				blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/availability/{id} - Block deleted successfully: block_id=%d", blockID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
