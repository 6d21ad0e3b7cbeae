package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	customerRepo "github.com/m04kA/SMC-BarberBot/internal/infra/storage/customer"
	"github.com/m04kA/SMC-BarberBot/internal/service/customers/models"
)

// Service сервис для работы с профилями клиентов
type Service struct {
	customerRepo    CustomerRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	clock           Clock
	logger          Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(
	customerRepo CustomerRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	clock Clock,
	logger Logger,
) *Service {
	return &Service{
		customerRepo:    customerRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		clock:           clock,
		logger:          logger,
	}
}

// GetProfile получает профиль клиента
func (s *Service) GetProfile(ctx context.Context, customerID int64) (*models.ProfileResponse, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetProfile: repository error for customer id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetProfile - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCustomer(customer), nil
}

// RegisterPhone сохраняет клиента с проверенным номером телефона
// Существующий клиент сохраняет прежнее имя, если новое не передано
func (s *Service) RegisterPhone(ctx context.Context, req *models.RegisterPhoneRequest) (*models.ProfileResponse, error) {
	phone, err := domain.NormalizePhone(req.PhoneNumber)
	if err != nil {
		s.logger.Warn("RegisterPhone: customer id=%d sent invalid phone", req.CustomerID)
		return nil, ErrInvalidPhone
	}

	name, err := domain.NormalizeName(req.Name)
	if err != nil {
		existing, getErr := s.customerRepo.GetByID(ctx, req.CustomerID)
		switch {
		case getErr == nil:
			name = existing.Name
		case errors.Is(getErr, customerRepo.ErrCustomerNotFound):
			// Имя неизвестно, используем номер телефона
			name = phone
		default:
			s.logger.Error("RegisterPhone: repository error for customer id=%d: %v", req.CustomerID, getErr)
			return nil, fmt.Errorf("%w: RegisterPhone - repository error: %v", ErrInternal, getErr)
		}
	}

	customer, err := s.customerRepo.Upsert(ctx, &domain.Customer{
		ID:          req.CustomerID,
		Name:        name,
		PhoneNumber: phone,
	})
	if err != nil {
		s.logger.Error("RegisterPhone: repository error for customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: RegisterPhone - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RegisterPhone: customer id=%d registered", customer.ID)
	return models.FromDomainCustomer(customer), nil
}

// Rename меняет имя клиента и обновляет снимок имени в его будущих записях
func (s *Service) Rename(ctx context.Context, customerID int64, rawName string) (*models.ProfileResponse, error) {
	name, err := domain.NormalizeName(rawName)
	if err != nil {
		return nil, ErrInvalidName
	}

	var refreshed int64
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.customerRepo.UpdateName(txCtx, customerID, name); err != nil {
			return err
		}
		updated, err := s.appointmentRepo.UpdateCustomerName(txCtx, customerID, name, s.clock.Now())
		refreshed = updated
		return err
	})
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Rename: customer id=%d not found", customerID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("Rename: repository error for customer id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: Rename - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Rename: customer id=%d renamed, %d appointment(s) refreshed", customerID, refreshed)
	return s.GetProfile(ctx, customerID)
}

// ChangePhone меняет номер телефона клиента
func (s *Service) ChangePhone(ctx context.Context, customerID int64, rawPhone string) (*models.ProfileResponse, error) {
	phone, err := domain.NormalizePhone(rawPhone)
	if err != nil {
		return nil, ErrInvalidPhone
	}

	if err := s.customerRepo.UpdatePhone(ctx, customerID, phone); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("ChangePhone: customer id=%d not found", customerID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("ChangePhone: repository error for customer id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: ChangePhone - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ChangePhone: customer id=%d changed phone", customerID)
	return s.GetProfile(ctx, customerID)
}
