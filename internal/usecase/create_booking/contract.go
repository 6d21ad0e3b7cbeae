package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	"github.com/m04kA/SMC-BarberBot/internal/notify"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CreateIfFree(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	FindActiveByCustomer(ctx context.Context, customerID int64, now time.Time) (*domain.Appointment, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// Clock интерфейс часов магазина (для тестирования)
type Clock interface {
	Now() time.Time
	StartOfDay(t time.Time) time.Time
}

// Notifier интерфейс асинхронных уведомлений оператора
type Notifier interface {
	Notify(event notify.Event)
}

// Metrics интерфейс учета исходов бронирования
type Metrics interface {
	IncBooking(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
