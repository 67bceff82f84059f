package create_booking

import "errors"

var (
	// ErrMissingFields возвращается, когда обязательные поля запроса не заполнены
	ErrMissingFields = errors.New("create_booking: missing required fields")

	// ErrInvalidInput возвращается при некорректных входных данных (формат даты/времени, размер группы)
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found or inactive")

	// ErrBarberNotFound возвращается, когда барбер не найден или неактивен
	ErrBarberNotFound = errors.New("create_booking: barber not found or inactive")

	// ErrSlotNotAvailable возвращается, когда слот пересекается с активным бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrBarberUnavailable возвращается, когда дата попадает в период недоступности барбера
	ErrBarberUnavailable = errors.New("create_booking: barber is unavailable on this date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
