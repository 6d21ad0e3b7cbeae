package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	"github.com/m04kA/SMC-BarberBot/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberBot/pkg/txmanager"
)

const (
	// calendarLockKey ключ advisory-блокировки единого календаря магазина
	calendarLockKey = 7_204_031

	// exclusionViolation код ошибки PostgreSQL для нарушения EXCLUDE ограничения
	exclusionViolation = "23P01"
)

var columns = []string{
	"id",
	"customer_id",
	"customer_name",
	"service_kind",
	"start_time",
	"end_time",
	"created_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor, txManager TransactionManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// CreateIfFree атомарно создает запись, если её интервал свободен
// Проверка и вставка выполняются в одной транзакции под advisory-блокировкой календаря,
// EXCLUDE ограничение таблицы страхует от записи в обход этого метода.
func (r *Repository) CreateIfFree(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := txmanager.GetExecutor(txCtx, r.db)

		if _, err := executor.ExecContext(txCtx, "SELECT pg_advisory_xact_lock($1)", calendarLockKey); err != nil {
			return fmt.Errorf("%w: CreateIfFree - acquire calendar lock: %v", ErrExecQuery, err)
		}

		query, args, err := psqlbuilder.Select("COUNT(*)").
			From("appointments").
			Where(squirrel.Lt{"start_time": appt.EndTime}).
			Where(squirrel.Gt{"end_time": appt.StartTime}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: CreateIfFree - build overlap query: %v", ErrBuildQuery, err)
		}

		var overlapping int
		if err := executor.QueryRowContext(txCtx, query, args...).Scan(&overlapping); err != nil {
			return fmt.Errorf("%w: CreateIfFree - scan overlap count: %v", ErrScanRow, err)
		}
		if overlapping > 0 {
			return ErrSlotTaken
		}

		query, args, err = psqlbuilder.Insert("appointments").
			Columns(
				"customer_id",
				"customer_name",
				"service_kind",
				"start_time",
				"end_time",
			).
			Values(
				appt.CustomerID,
				appt.CustomerName,
				appt.Service,
				appt.StartTime,
				appt.EndTime,
			).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: CreateIfFree - build insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(txCtx, query, args...).Scan(&appt.ID, &appt.CreatedAt); err != nil {
			if IsExclusionViolation(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: CreateIfFree - execute insert: %v", ErrExecQuery, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return appt, nil
}

// FindOverlapping получает записи, пересекающие интервал [from, to), по возрастанию начала
func (r *Repository) FindOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// FindActiveByCustomer получает ближайшую незавершённую запись клиента
func (r *Repository) FindActiveByCustomer(ctx context.Context, customerID int64, now time.Time) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Gt{"end_time": now}).
		OrderBy("start_time ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByCustomer - scan appointment: %v", ErrScanRow, err)
	}
	return appt, nil
}

// UpdateCustomerName обновляет снимок имени во всех незавершённых записях клиента
func (r *Repository) UpdateCustomerName(ctx context.Context, customerID int64, name string, now time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("customer_name", name).
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Gt{"end_time": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateCustomerName - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateCustomerName - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateCustomerName - get rows affected: %v", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

// DeleteByCustomer удаляет запись, только если она принадлежит клиенту
func (r *Repository) DeleteByCustomer(ctx context.Context, id, customerID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id, "customer_id": customerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByCustomer - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByCustomer - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByCustomer - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// DeleteBefore удаляет все записи, начавшиеся строго раньше instant
// Возвращает количество удалённых записей
func (r *Repository) DeleteBefore(ctx context.Context, instant time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Lt{"start_time": instant}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBefore - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBefore - get rows affected: %v", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

// IsExclusionViolation проверяет, что ошибка вызвана EXCLUDE ограничением
func IsExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == exclusionViolation
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	err := row.Scan(
		&appt.ID,
		&appt.CustomerID,
		&appt.CustomerName,
		&appt.Service,
		&appt.StartTime,
		&appt.EndTime,
		&appt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appts = append(appts, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appts, nil
}
