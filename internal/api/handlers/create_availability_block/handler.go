package create_availability_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PFM-BookingService/internal/api/handlers"
	"github.com/m04kA/PFM-BookingService/internal/service/availability"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный период недоступности"
	msgBarberNotFound     = "барбер не найден"
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

// Handle POST /api/admin/barbers/{barberId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberIDStr := vars["barberId"]

	barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/barbers/{id}/availability - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/barbers/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	block, err := h.service.Create(r.Context(), req.ToServiceRequest(barberID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /admin/barbers/{id}/availability - Invalid dates: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, availability.ErrBarberNotFound):
			h.logger.Warn("POST /admin/barbers/{id}/availability - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		default:
			h.logger.Error("POST /admin/barbers/{id}/availability - Failed to create block: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/barbers/{id}/availability - Block created successfully: block_id=%d, barber_id=%d",
		block.ID, barberID)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
