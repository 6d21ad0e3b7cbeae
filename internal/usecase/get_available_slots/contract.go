package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

// AppointmentRepository интерфейс чтения календаря
type AppointmentRepository interface {
	// FindOverlapping получает записи, пересекающие интервал [from, to)
	FindOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
}

// Clock интерфейс часов магазина (для тестирования)
type Clock interface {
	Now() time.Time
	StartOfDay(t time.Time) time.Time
	DayBounds(day time.Time) (time.Time, time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
