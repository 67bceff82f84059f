package get_blocked_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/PFM-BookingService/internal/api/handlers"
	getBlockedSlots "github.com/m04kA/PFM-BookingService/internal/usecase/get_blocked_slots"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidParams   = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetBlockedSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetBlockedSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/bookings/blocked-slots
// Query params: barberId, date (обязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberIDStr := r.URL.Query().Get("barberId")
	dateStr := r.URL.Query().Get("date")

	barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/blocked-slots - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getBlockedSlots.Request{
		BarberID: barberID,
		Date:     dateStr,
	})
	if err != nil {
		switch {
		case errors.Is(err, getBlockedSlots.ErrInvalidInput):
			h.logger.Warn("GET /bookings/blocked-slots - Invalid parameters: barber_id=%d, date=%s, error=%v",
				barberID, dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /bookings/blocked-slots - Failed to get blocked slots: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/blocked-slots - Retrieved %d blocked slots: barber_id=%d, date=%s",
		len(result.Slots), barberID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, result)
}
