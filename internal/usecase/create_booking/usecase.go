package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBot/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/SMC-BarberBot/internal/infra/storage/customer"
	"github.com/m04kA/SMC-BarberBot/internal/notify"
	"github.com/m04kA/SMC-BarberBot/pkg/metrics"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	customerRepo    CustomerRepository
	clock           Clock
	notifier        Notifier
	metrics         Metrics
	hours           domain.BusinessHours
	horizonDays     int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	customerRepo CustomerRepository,
	clock Clock,
	notifier Notifier,
	m Metrics,
	hours domain.BusinessHours,
	horizonDays int,
	logger Logger,
) *UseCase {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultHorizonDays
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		clock:           clock,
		notifier:        notifier,
		metrics:         m,
		hours:           hours,
		horizonDays:     horizonDays,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Занятость слота перепроверяется атомарно в репозитории в момент вставки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, service=%s, start=%s",
		req.CustomerID, req.Service, req.Start.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBooking(metrics.OutcomeRejected)
		return nil, err
	}

	now := uc.clock.Now()
	start := req.Start.In(now.Location())

	// 2. Проверяем рабочие часы, прошлое и горизонт
	if err := validateStart(start, now, uc.clock.StartOfDay(now), uc.hours, uc.horizonDays); err != nil {
		uc.logger.Warn("CreateBooking: start validation failed: %v", err)
		uc.metrics.IncBooking(metrics.OutcomeRejected)
		return nil, err
	}

	// 3. Получаем клиента (запись возможна только после сохранения телефона)
	customer, err := uc.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			uc.metrics.IncBooking(metrics.OutcomeRejected)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 4. Не больше одной будущей записи на клиента
	active, err := uc.appointmentRepo.FindActiveByCustomer(ctx, customer.ID, now)
	switch {
	case err == nil:
		uc.logger.Warn("CreateBooking: customer id=%d already has appointment id=%d", customer.ID, active.ID)
		uc.metrics.IncBooking(metrics.OutcomeRejected)
		return nil, ErrActiveAppointmentExists
	case !errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		uc.logger.Error("CreateBooking: failed to get active appointment for customer id=%d: %v", customer.ID, err)
		return nil, fmt.Errorf("%w: failed to get active appointment: %v", ErrInternal, err)
	}

	// 5. Атомарная вставка, если интервал свободен
	created, err := uc.appointmentRepo.CreateIfFree(ctx, domain.NewAppointment(customer, req.Service, start))
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: slot %s already taken", start.Format("2006-01-02 15:04"))
			uc.metrics.IncBooking(metrics.OutcomeConflict)
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	uc.metrics.IncBooking(metrics.OutcomeCreated)
	uc.logger.Info("CreateBooking: successfully created appointment id=%d", created.ID)

	// 6. Уведомление оператора не влияет на результат
	uc.notifier.Notify(notify.NewBookingEvent(customer, created))

	return toResponse(created), nil
}
