package customers

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	UpdateName(ctx context.Context, id int64, name string) error
	UpdatePhone(ctx context.Context, id int64, phone string) error
}

// AppointmentRepository интерфейс обновления снимка имени в записях
type AppointmentRepository interface {
	UpdateCustomerName(ctx context.Context, customerID int64, name string, now time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock интерфейс часов магазина
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
