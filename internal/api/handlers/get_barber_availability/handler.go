package get_barber_availability

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PFM-BookingService/internal/api/handlers"
	"github.com/m04kA/PFM-BookingService/internal/service/availability"
)

const msgInvalidBarberID = "некорректный ID барбера"

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

// Handle GET /api/admin/barbers/{barberId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberIDStr := vars["barberId"]

	barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /admin/barbers/{id}/availability - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	blocks, err := h.service.ListByBarber(r.Context(), barberID)
	if err != nil {
		h.logger.Error("GET /admin/barbers/{id}/availability - Failed to list blocks: barber_id=%d, error=%v",
			barberID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/barbers/{id}/availability - Retrieved %d blocks: barber_id=%d", len(blocks), barberID)
	handlers.RespondJSON(w, http.StatusOK, ListBlocksResponse{Items: blocks})
}

// ListBlocksResponse HTTP response model
type ListBlocksResponse struct {
	Items []*availability.BlockResponse `json:"items"`
}
