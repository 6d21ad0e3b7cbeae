package domain

import "errors"

// Default shop configuration values
const (
	DefaultTimezone    = "Asia/Yerevan"
	DefaultOpenHour    = 9
	DefaultCloseHour   = 20
	DefaultHorizonDays = 7
	DefaultShopName    = "Barbershop"
)

// Business validation constants
const (
	MaxNameLength = 64
	MinHour       = 0
	MaxHour       = 24
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

var (
	// ErrInvalidPhone возвращается, когда номер не проходит проверку формата
	ErrInvalidPhone = errors.New("domain: invalid phone number")

	// ErrInvalidName возвращается для пустого или слишком длинного имени
	ErrInvalidName = errors.New("domain: invalid name")

	// ErrUnknownService возвращается для неизвестной услуги
	ErrUnknownService = errors.New("domain: unknown service")
)
