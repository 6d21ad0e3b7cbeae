package customers

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент еще не зарегистрирован
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInvalidPhone возвращается, когда номер не проходит проверку формата
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidName возвращается для пустого или слишком длинного имени
	ErrInvalidName = errors.New("invalid name")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
