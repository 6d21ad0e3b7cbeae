package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	"github.com/m04kA/SMC-BarberBot/internal/notify"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindActiveByCustomer(ctx context.Context, customerID int64, now time.Time) (*domain.Appointment, error)
	FindOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
	DeleteByCustomer(ctx context.Context, id, customerID int64) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// Clock интерфейс часов магазина
type Clock interface {
	Now() time.Time
	DayBounds(day time.Time) (time.Time, time.Time)
}

// Notifier интерфейс асинхронных уведомлений оператора
type Notifier interface {
	Notify(event notify.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
