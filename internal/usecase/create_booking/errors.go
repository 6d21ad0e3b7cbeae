package create_booking

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент еще не оставил номер телефона
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrUnknownService возвращается для неизвестной услуги
	ErrUnknownService = errors.New("create_booking: unknown service")

	// ErrInvalidTimeSlot возвращается, когда время не на границе часа или вне рабочих часов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotInPast возвращается, когда начало слота уже прошло
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата за пределами горизонта бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrActiveAppointmentExists возвращается, когда у клиента уже есть будущая запись
	ErrActiveAppointmentExists = errors.New("create_booking: customer already has an active appointment")

	// ErrSlotNotAvailable возвращается, когда слот заняли между показом и подтверждением
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
