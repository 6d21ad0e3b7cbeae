package sweep_appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	"github.com/m04kA/SMC-BarberBot/internal/notify"
	"github.com/m04kA/SMC-BarberBot/pkg/metrics"
)

// Response результат очистки
type Response struct {
	Cutoff  time.Time // локальная полночь, раньше которой записи удалены
	Deleted int64
}

// UseCase удаляет записи, начавшиеся до сегодняшней локальной полуночи
type UseCase struct {
	appointmentRepo AppointmentRepository
	clock           Clock
	notifier        Notifier
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	clock Clock,
	notifier Notifier,
	m Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		clock:           clock,
		notifier:        notifier,
		metrics:         m,
		logger:          logger,
	}
}

// Execute выполняет очистку; повторный запуск в тот же день ничего не удаляет
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	cutoff := uc.clock.Today()

	deleted, err := uc.appointmentRepo.DeleteBefore(ctx, cutoff)
	if err != nil {
		uc.logger.Error("SweepAppointments: failed to delete appointments before %s: %v", cutoff.Format(domain.DateFormat), err)
		uc.metrics.ObserveSweep(metrics.ResultError, 0)
		return nil, fmt.Errorf("%w: failed to delete appointments: %v", ErrInternal, err)
	}

	uc.metrics.ObserveSweep(metrics.ResultOK, deleted)
	uc.logger.Info("SweepAppointments: deleted %d appointment(s) before %s", deleted, cutoff.Format(domain.DateFormat))

	uc.notifier.Notify(notify.SweepReportEvent(deleted))

	return &Response{Cutoff: cutoff, Deleted: deleted}, nil
}
