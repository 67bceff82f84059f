package availability

import "errors"

var (
	// ErrBlockNotFound возвращается, когда период недоступности не найден
	ErrBlockNotFound = errors.New("availability.service: block not found")

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("availability.service: barber not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
