package sweep_appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/notify"
)

// AppointmentRepository интерфейс удаления прошедших записей
type AppointmentRepository interface {
	DeleteBefore(ctx context.Context, instant time.Time) (int64, error)
}

// Clock интерфейс часов магазина (для тестирования)
type Clock interface {
	Today() time.Time
}

// Notifier интерфейс асинхронных уведомлений оператора
type Notifier interface {
	Notify(event notify.Event)
}

// Metrics интерфейс учета запусков очистки
type Metrics interface {
	ObserveSweep(result string, deleted int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
