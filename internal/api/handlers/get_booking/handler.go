package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PFM-BookingService/internal/api/handlers"
	"github.com/m04kA/PFM-BookingService/internal/service/bookings"
)

const (
	msgMissingCode = "не указан код бронирования"
	msgNotFound    = "бронирование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/bookings/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := vars["code"]
	if code == "" {
		h.logger.Warn("GET /bookings/{code} - Missing booking code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	booking, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{code} - Booking not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{code} - Failed to get booking: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{code} - Booking retrieved successfully: code=%s", code)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
