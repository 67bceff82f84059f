package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PFM-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/PFM-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingFields      = "не заполнены обязательные поля"
	msgInvalidInput       = "некорректные данные запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgBarberNotFound     = "барбер не найден"
	msgSlotNotAvailable   = "выбранный временной слот уже занят"
	msgBarberUnavailable  = "барбер недоступен в выбранную дату"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrMissingFields):
			h.logger.Warn("POST /bookings - Missing required fields: barber_id=%d, service_id=%d",
				req.BarberID, req.ServiceID)
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: barber_id=%d, service_id=%d, error=%v",
				req.BarberID, req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrBarberNotFound):
			h.logger.Warn("POST /bookings - Barber not found: barber_id=%d", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: barber_id=%d, date=%s, time=%s",
				req.BarberID, req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrBarberUnavailable):
			h.logger.Warn("POST /bookings - Barber unavailable: barber_id=%d, date=%s", req.BarberID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgBarberUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: barber_id=%d, service_id=%d, error=%v",
				req.BarberID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, code=%s, barber_id=%d",
		result.ID, result.Code, req.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
