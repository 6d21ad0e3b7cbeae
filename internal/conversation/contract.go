package conversation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	bookingModels "github.com/m04kA/SMC-BarberBot/internal/service/bookings/models"
	customerModels "github.com/m04kA/SMC-BarberBot/internal/service/customers/models"
	"github.com/m04kA/SMC-BarberBot/internal/usecase/create_booking"
)

// Availability интерфейс движка доступности
type Availability interface {
	AvailableSlots(ctx context.Context, day time.Time) ([]domain.TimeSlot, error)
	NearestSlot(ctx context.Context) (domain.NearestSlot, bool, error)
	Days() []time.Time
	IsWithinHorizon(day time.Time) bool
}

// BookingCreator интерфейс use case создания записи
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// CustomerService интерфейс сервиса профилей клиентов
type CustomerService interface {
	GetProfile(ctx context.Context, customerID int64) (*customerModels.ProfileResponse, error)
	RegisterPhone(ctx context.Context, req *customerModels.RegisterPhoneRequest) (*customerModels.ProfileResponse, error)
	Rename(ctx context.Context, customerID int64, name string) (*customerModels.ProfileResponse, error)
	ChangePhone(ctx context.Context, customerID int64, phone string) (*customerModels.ProfileResponse, error)
}

// BookingService интерфейс сервиса записей клиента
type BookingService interface {
	GetActive(ctx context.Context, customerID int64) (*bookingModels.AppointmentResponse, error)
	CancelActive(ctx context.Context, customerID int64) (*bookingModels.AppointmentResponse, error)
}

// Assistant интерфейс внешнего ассистента для свободного текста
type Assistant interface {
	Complete(ctx context.Context, systemPrompt, utterance string) (string, error)
}

// Clock интерфейс часов магазина
type Clock interface {
	Now() time.Time
	ParseDate(value string) (time.Time, error)
}

// Metrics интерфейс учета обращений к ассистенту
type Metrics interface {
	IncAssistant(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
