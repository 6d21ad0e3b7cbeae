package bookings

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда у клиента нет будущей записи
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
