package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBot/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBot/internal/notify"
	"github.com/m04kA/SMC-BarberBot/internal/service/bookings/models"
)

// Service сервис для работы с записями клиентов
type Service struct {
	appointmentRepo AppointmentRepository
	customerRepo    CustomerRepository
	clock           Clock
	notifier        Notifier
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	customerRepo CustomerRepository,
	clock Clock,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		clock:           clock,
		notifier:        notifier,
		logger:          logger,
	}
}

// GetActive получает будущую (незавершенную) запись клиента
func (s *Service) GetActive(ctx context.Context, customerID int64) (*models.AppointmentResponse, error) {
	appt, err := s.appointmentRepo.FindActiveByCustomer(ctx, customerID, s.clock.Now())
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetActive: repository error for customer id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetActive - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAppointment(appt), nil
}

// CancelActive удаляет будущую запись клиента и уведомляет оператора
// Клиент может отменить только свою запись
func (s *Service) CancelActive(ctx context.Context, customerID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("CancelActive: cancelling appointment of customer id=%d", customerID)

	appt, err := s.appointmentRepo.FindActiveByCustomer(ctx, customerID, s.clock.Now())
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("CancelActive: customer id=%d has no active appointment", customerID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("CancelActive: repository error for customer id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: CancelActive - repository error: %v", ErrInternal, err)
	}

	if err := s.appointmentRepo.DeleteByCustomer(ctx, appt.ID, customerID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("CancelActive: appointment id=%d not found during cancellation", appt.ID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("CancelActive: repository error for appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: CancelActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelActive: successfully cancelled appointment id=%d", appt.ID)

	// Телефон в уведомлении не обязателен, ошибка чтения клиента не отменяет отмену
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		s.logger.Warn("CancelActive: failed to get customer id=%d for notification: %v", customerID, err)
		customer = &domain.Customer{ID: customerID, Name: appt.CustomerName}
	}
	s.notifier.Notify(notify.CancellationEvent(customer, appt))

	return models.FromDomainAppointment(appt), nil
}

// GetDayAppointments получает записи, пересекающие локальный день
func (s *Service) GetDayAppointments(ctx context.Context, day time.Time) (*models.AppointmentListResponse, error) {
	from, to := s.clock.DayBounds(day)

	appts, err := s.appointmentRepo.FindOverlapping(ctx, from, to)
	if err != nil {
		s.logger.Error("GetDayAppointments: repository error for %s: %v", from.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDayAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDayAppointments: fetched %d appointment(s) for %s", len(appts), from.Format(domain.DateFormat))
	return models.FromDomainAppointmentList(appts), nil
}
