package appointment

import (
	"context"

	"github.com/m04kA/SMC-BarberBot/pkg/txmanager"
)

// Переиспользуем интерфейс executor из txmanager для работы с БД
type DBExecutor = txmanager.DBExecutor

// TransactionManager интерфейс для выполнения проверки и вставки в одной транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
