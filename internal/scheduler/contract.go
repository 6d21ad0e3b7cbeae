package scheduler

import (
	"context"

	"github.com/m04kA/SMC-BarberBot/internal/usecase/sweep_appointments"
)

// SweepUseCase интерфейс очистки прошедших записей
type SweepUseCase interface {
	Execute(ctx context.Context) (*sweep_appointments.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
