package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrInvalidStatus возвращается при нераспознанной строке статуса
	ErrInvalidStatus = errors.New("bookings.service: invalid booking status")

	// ErrCannotTransition возвращается, когда переход между статусами запрещен
	ErrCannotTransition = errors.New("bookings.service: status transition not permitted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
